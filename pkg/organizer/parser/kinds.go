package parser

// tree-sitter-typescript node kinds consumed by the walker.
const (
	kindComment                   = "comment"
	kindDecorator                 = "decorator"
	kindExportStatement           = "export_statement"
	kindImportStatement           = "import_statement"
	kindTypeAliasDeclaration      = "type_alias_declaration"
	kindInterfaceDeclaration      = "interface_declaration"
	kindClassDeclaration          = "class_declaration"
	kindAbstractClassDeclaration  = "abstract_class_declaration"
	kindEnumDeclaration           = "enum_declaration"
	kindFunctionDeclaration       = "function_declaration"
	kindGeneratorFunctionDecl     = "generator_function_declaration"
	kindFunctionSignature         = "function_signature"
	kindMethodDefinition          = "method_definition"
	kindMethodSignature           = "method_signature"
	kindAbstractMethodSignature   = "abstract_method_signature"
	kindPublicFieldDefinition     = "public_field_definition"
	kindPropertySignature         = "property_signature"
	kindIndexSignature            = "index_signature"
	kindAccessibilityModifier     = "accessibility_modifier"
	kindArrowFunction             = "arrow_function"
	kindFunctionExpression        = "function_expression"
	kindFunction                  = "function"
	kindPrivatePropertyIdentifier = "private_property_identifier"
	kindTemplateString            = "template_string"
	kindString                    = "string"
	kindOpenBrace                 = "{"
	kindCloseBrace                = "}"
	kindSemicolon                 = ";"
	kindComma                     = ","
	kindOpenBracket               = "["
	keywordStatic                 = "static"
	keywordAbstract               = "abstract"
	keywordReadonly               = "readonly"
	keywordConst                  = "const"
	keywordGet                    = "get"
	keywordSet                    = "set"
	constructorName               = "constructor"
	indexName                     = "index"
	importName                    = "import"
	fieldName                     = "name"
	fieldBody                     = "body"
	fieldValue                    = "value"
	fieldDeclaration              = "declaration"
)
