package lexer

import "strings"

// Rule pairs one regular-expression fragment with the class of the text it
// matches. Within a language, earlier rules win when several match at the
// same position.
type Rule struct {
	Type    TokenType
	Pattern string
}

// words builds a whole-word alternation.
func words(list ...string) string {
	return `\b(?:` + strings.Join(list, "|") + `)\b`
}

// Fragments shared by several pattern sets.
const (
	lineCommentSlash = `//.*`
	lineCommentHash  = `#.*`
	blockComment     = `/\*[\s\S]*?\*/`
	doubleQuoted     = `"(?:\\.|[^"\\\n])*"`
	singleQuoted     = `'(?:\\.|[^'\\\n])*'`
	// Identifiers start with an ASCII letter or underscore; other starts stay untyped.
	callName      = `\b[a-z_]\w*(?=\s*\()`
	identifier    = `\b[a-z_]\w*\b`
	decimalNumber = `\b\d[\d_]*(?:\.\d+)?(?:e[+-]?\d+)?\b`
	hexNumber     = `\b0x[\da-f_]+\b`
	cOperator     = `->|\+\+|--|<<=?|>>=?|&&|\|\||[-+*/%=<>!&|^~?:]=?`
)

var pythonRules = []Rule{
	{TypeComment, lineCommentHash},
	{TypeString, `(?:\b[rbuf]{1,2})?"""[\s\S]*?"""`},
	{TypeString, `(?:\b[rbuf]{1,2})?'''[\s\S]*?'''`},
	{TypeString, `(?:\b[rbuf]{1,2})?` + doubleQuoted},
	{TypeString, `(?:\b[rbuf]{1,2})?` + singleQuoted},
	{TypeDecorator, `@[a-z_][\w.]*`},
	{TypeKeyword, words("and", "as", "assert", "async", "await", "break", "class", "continue",
		"def", "del", "elif", "else", "except", "finally", "for", "from", "global", "if",
		"import", "in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return",
		"try", "while", "with", "yield", "match", "case")},
	{TypeConstant, words("True", "False", "None", "self", "cls")},
	{TypeBuiltin, words("print", "len", "range", "str", "int", "float", "list", "dict", "set",
		"tuple", "bool", "open", "isinstance", "super", "type", "enumerate", "zip", "map",
		"filter", "sorted", "reversed", "min", "max", "sum", "abs", "any", "all", "input",
		"repr", "hasattr", "getattr", "setattr", "iter", "next", "object", "Exception")},
	{TypeFunction, callName},
	{TypeNumber, hexNumber + `|\b0[ob][01-7_]+\b|\b\d[\d_]*(?:\.\d+)?(?:e[+-]?\d+)?j?\b`},
	{TypeOperator, `\*\*=?|//=?|->|:=|[-+*/%=<>!&|^~@]=?`},
	{TypeVariable, identifier},
}

var jsStrings = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypeString, "`(?:\\\\[\\s\\S]|[^`\\\\])*`"},
	{TypeString, doubleQuoted},
	{TypeString, singleQuoted},
}

var jsKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "finally", "for", "from",
	"function", "if", "import", "in", "instanceof", "let", "new", "of", "return", "static",
	"super", "switch", "this", "throw", "try", "typeof", "var", "void", "while", "with",
	"yield", "get", "set",
}

var jsTail = []Rule{
	{TypeConstant, words("true", "false", "null", "undefined", "NaN", "Infinity")},
	{TypeBuiltin, words("console", "window", "document", "Math", "JSON", "Promise", "Object",
		"Array", "String", "Number", "Boolean", "Map", "Set", "Error", "require", "module",
		"exports", "process", "globalThis")},
	{TypeFunction, `[a-z_$][\w$]*(?=\s*\()`},
	{TypeNumber, `\b0x[\da-f]+n?\b|\b\d[\d_]*(?:\.\d+)?(?:e[+-]?\d+)?n?\b`},
	{TypeOperator, `=>|\.\.\.|\?\?=?|\?\.|===?|!==?|&&=?|\|\|=?|\*\*=?|[-+*/%<>&|^~!?:]=?|=`},
	{TypeVariable, `[a-z_$][\w$]*`},
}

// jsRegex is ambiguous with division; pattern order alone decides.
const jsRegex = `/(?![*/\s])(?:\\.|\[(?:\\.|[^\]\\\n])*\]|[^/\\\n\[])+/[dgimsuy]*`

var javascriptRules = concat(
	jsStrings,
	[]Rule{
		{TypeJSXTag, `</?[a-z][\w.:-]*(?=[\s/>])|/?>(?=\s*(?:$|<|\{))`},
		{TypeRegex, jsRegex},
		{TypeKeyword, words(jsKeywords...)},
	},
	jsTail,
)

var typescriptRules = concat(
	jsStrings,
	[]Rule{
		{TypeDecorator, `@[a-z_$][\w$.]*`},
		{TypeJSXTag, `</?[a-z][\w.:-]*(?=[\s/>])|/?>(?=\s*(?:$|<|\{))`},
		{TypeRegex, jsRegex},
		{TypeKeyword, words(append([]string{"interface", "type", "enum", "implements",
			"namespace", "declare", "readonly", "public", "private", "protected", "abstract",
			"keyof", "as", "is", "satisfies", "infer", "override"}, jsKeywords...)...)},
		{TypeDatatype, words("string", "number", "boolean", "any", "void", "never",
			"unknown", "object", "bigint", "symbol", "Record", "Partial", "Readonly")},
	},
	jsTail,
)

var bashRules = []Rule{
	{TypeComment, `(?<![\w$#])#.*`},
	{TypeString, `"(?:\\[\s\S]|[^"\\])*"`},
	{TypeString, `'[^']*'`},
	{TypeVariable, `\$\{[^}\n]*\}|\$\(\(?|\$[a-z_]\w*|\$[0-9#?$!@*-]`},
	{TypeKeyword, words("if", "then", "else", "elif", "fi", "for", "while", "until", "do",
		"done", "case", "esac", "in", "function", "select", "return", "exit", "break",
		"continue", "local", "export", "readonly", "declare", "unset", "shift", "source")},
	{TypeBuiltin, words("echo", "printf", "cd", "pwd", "read", "test", "set", "eval", "exec",
		"trap", "alias", "cat", "grep", "sed", "awk", "ls", "rm", "cp", "mv", "mkdir",
		"chmod", "chown", "kill", "sudo", "curl", "find", "xargs")},
	{TypeFunction, `\b[a-z_][\w-]*(?=\s*\(\))`},
	{TypeFlag, `(?<=\s)--?[a-z][\w-]*`},
	{TypeNumber, `\b\d+\b`},
	{TypeOperator, `&&|\|\||;;|<<-?|>>|[|&;<>!=]`},
}

var cKeywords = []string{
	"auto", "break", "case", "const", "continue", "default", "do", "else", "enum",
	"extern", "for", "goto", "if", "inline", "register", "restrict", "return", "sizeof",
	"static", "struct", "switch", "typedef", "union", "volatile", "while",
}

var cDatatypes = []string{
	"char", "double", "float", "int", "long", "short", "signed", "unsigned", "void",
	"bool", "_Bool", "size_t", "ssize_t", "ptrdiff_t", "u?int(?:8|16|32|64)_t", "FILE",
}

// cHead holds the comment, preprocessor and literal rules shared by C and C++.
var cHead = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypeString, `(?<=#\s*include\s*)<[^>\n]*>`},
	{TypePreprocessor, `#\s*[a-z]+\b`},
	{TypeString, `(?:\b(?:u8|[ul]))?` + doubleQuoted},
	{TypeString, `'(?:\\.|[^'\\\n])+'`},
}

var cTail = []Rule{
	{TypeConstant, words("NULL", "true", "false", "nullptr", "EOF")},
	{TypeFunction, callName},
	{TypeNumber, `\b0x[\da-f]+[ul]*\b|\b\d+(?:\.\d+)?(?:e[+-]?\d+)?[ulf]*\b`},
	{TypeOperator, cOperator},
	{TypeVariable, identifier},
}

var cRules = concat(
	cHead,
	[]Rule{
		{TypeKeyword, words(cKeywords...)},
		{TypeDatatype, words(cDatatypes...)},
	},
	cTail,
)

var cppRules = concat(
	cHead,
	[]Rule{
		{TypeKeyword, words(append([]string{"class", "namespace", "template", "typename",
			"public", "private", "protected", "virtual", "override", "final", "new",
			"delete", "this", "throw", "try", "catch", "using", "operator", "friend",
			"constexpr", "consteval", "noexcept", "explicit", "mutable", "decltype",
			"static_cast", "dynamic_cast", "reinterpret_cast", "const_cast", "co_await",
			"co_return", "co_yield", "concept", "requires"}, cKeywords...)...)},
		{TypeDatatype, words(append([]string{"string", "vector", "map", "unordered_map",
			"set", "pair", "shared_ptr", "unique_ptr", "wchar_t", "char8_t", "char16_t",
			"char32_t"}, cDatatypes...)...)},
		{TypeNamespace, `\b[a-z_]\w*(?=::)`},
	},
	cTail,
)

var csharpRules = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypePreprocessor, `#\s*(?:if|else|elif|endif|define|undef|region|endregion|pragma|nullable)\b.*`},
	{TypeString, `@"(?:""|[^"])*"`},
	{TypeString, `\$` + doubleQuoted},
	{TypeString, doubleQuoted},
	{TypeString, `'(?:\\.|[^'\\\n])+'`},
	{TypeAnnotation, `(?<=^[ \t]*\[\s*)[a-z_]\w*(?=\s*[\](])`},
	{TypeKeyword, words("abstract", "as", "async", "await", "base", "break", "case",
		"catch", "checked", "class", "const", "continue", "default", "delegate", "do",
		"else", "enum", "event", "explicit", "extern", "finally", "fixed", "for",
		"foreach", "get", "goto", "if", "implicit", "in", "init", "interface", "internal",
		"is", "lock", "namespace", "new", "operator", "out", "override", "params",
		"partial", "private", "protected", "public", "readonly", "record", "ref",
		"return", "sealed", "set", "sizeof", "stackalloc", "static", "struct", "switch",
		"this", "throw", "try", "typeof", "unchecked", "unsafe", "using", "virtual",
		"volatile", "when", "where", "while", "yield")},
	{TypeDatatype, words("bool", "byte", "char", "decimal", "double", "float", "int", "long",
		"object", "sbyte", "short", "string", "uint", "ulong", "ushort", "void", "var",
		"dynamic", "nint", "nuint")},
	{TypeConstant, words("true", "false", "null")},
	{TypeFunction, callName},
	{TypeNumber, `\b0x[\da-f_]+[ul]*\b|\b\d[\d_]*(?:\.\d+)?(?:e[+-]?\d+)?[fdmul]*\b`},
	{TypeOperator, `=>|\?\?=?|\?\.|` + cOperator},
	{TypeVariable, identifier},
}

var swiftRules = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypeString, `"""[\s\S]*?"""`},
	{TypeString, doubleQuoted},
	{TypeAnnotation, `@[a-z_]\w*`},
	{TypeDirective, `#(?:if|elseif|else|endif|available|selector|keyPath|warning|error)\b`},
	{TypeKeyword, words("associatedtype", "class", "deinit", "enum", "extension",
		"fileprivate", "func", "import", "init", "inout", "internal", "let", "open",
		"operator", "private", "protocol", "public", "rethrows", "static", "struct",
		"subscript", "typealias", "var", "break", "case", "continue", "default", "defer",
		"do", "else", "fallthrough", "for", "guard", "if", "in", "repeat", "return",
		"switch", "where", "while", "as", "catch", "is", "super", "self", "Self", "throw",
		"throws", "try", "async", "await", "some", "any", "override", "mutating", "lazy",
		"weak", "final", "convenience", "required")},
	{TypeDatatype, words("Int", "Int8", "Int16", "Int32", "Int64", "UInt", "Double", "Float",
		"String", "Bool", "Character", "Array", "Dictionary", "Set", "Optional", "Void",
		"Any", "AnyObject", "Error", "Result")},
	{TypeConstant, words("true", "false", "nil")},
	{TypeFunction, callName},
	{TypeNumber, `\b0x[\da-f_]+\b|\b0b[01_]+\b|` + decimalNumber},
	{TypeOperator, `\.\.\.|\.\.<|->|\?\?|===?|!==?|&&|\|\||[-+*/%=<>!&|^~?]=?`},
	{TypeVariable, identifier},
}

var phpRules = []Rule{
	{TypeTag, `<\?(?:php|=)?|\?>`},
	{TypeComment, lineCommentSlash},
	{TypeComment, `#(?!\[).*`},
	{TypeComment, blockComment},
	{TypeAnnotation, `#\[[^\]\n]*\]`},
	{TypeString, `"(?:\\[\s\S]|[^"\\])*"`},
	{TypeString, `'(?:\\[\s\S]|[^'\\])*'`},
	{TypeVariable, `\$[a-z_]\w*`},
	{TypeKeyword, words("abstract", "and", "array", "as", "break", "callable", "case",
		"catch", "class", "clone", "const", "continue", "declare", "default", "do", "echo",
		"else", "elseif", "empty", "enddeclare", "endfor", "endforeach", "endif",
		"endswitch", "endwhile", "enum", "extends", "final", "finally", "fn", "for",
		"foreach", "function", "global", "goto", "if", "implements", "include",
		"include_once", "instanceof", "insteadof", "interface", "isset", "list", "match",
		"namespace", "new", "or", "print", "private", "protected", "public", "readonly",
		"require", "require_once", "return", "static", "switch", "throw", "trait", "try",
		"unset", "use", "var", "while", "xor", "yield")},
	{TypeConstant, words("true", "false", "null", "__DIR__", "__FILE__", "__LINE__",
		"__CLASS__", "__FUNCTION__", "__METHOD__", "PHP_EOL")},
	{TypeFunction, callName},
	{TypeNumber, hexNumber + `|` + decimalNumber},
	{TypeOperator, `->|=>|::|\?\?=?|===?|!==?|<=>|&&|\|\||\.=?|[-+*/%=<>!&|^~?:]=?`},
}

var sqlRules = []Rule{
	{TypeComment, `--.*`},
	{TypeComment, blockComment},
	{TypeString, `'(?:''|[^'])*'`},
	{TypeVariable, `"(?:""|[^"])*"|` + "`[^`]*`"},
	{TypeConstant, words("true", "false", "null")},
	{TypeKeyword, words("select", "from", "where", "insert", "into", "values", "update",
		"set", "delete", "create", "table", "drop", "alter", "add", "column", "index",
		"view", "join", "inner", "left", "right", "outer", "full", "cross", "on", "group",
		"by", "order", "having", "limit", "offset", "union", "all", "distinct", "as", "and",
		"or", "not", "is", "in", "between", "like", "ilike", "exists", "case", "when",
		"then", "else", "end", "primary", "key", "foreign", "references", "default",
		"unique", "check", "constraint", "begin", "commit", "rollback", "transaction",
		"with", "returning", "asc", "desc", "if", "replace", "truncate", "grant", "revoke",
		"cascade", "using", "over", "partition")},
	{TypeDatatype, words("int", "integer", "bigint", "smallint", "tinyint", "decimal",
		"numeric", "float", "real", "double", "precision", "varchar", "char", "text", "date",
		"time", "timestamp", "datetime", "interval", "boolean", "blob", "json", "jsonb",
		"uuid", "serial", "bigserial")},
	{TypeFunction, callName},
	{TypeVariable, `[@:][a-z_]\w*|\?`},
	{TypeNumber, decimalNumber},
	{TypeOperator, `<>|!=|<=|>=|\|\||::|[-+*/%=<>]`},
	{TypeVariable, identifier},
}

var monkeyCRules = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypeString, doubleQuoted},
	{TypeString, `'(?:\\.|[^'\\\n])'`},
	{TypeAnnotation, `\(:[a-z_]\w*\)`},
	{TypeKeyword, words("class", "function", "var", "const", "hidden", "static", "module",
		"using", "as", "import", "extends", "if", "else", "for", "while", "do", "switch",
		"case", "default", "break", "continue", "return", "new", "instanceof", "has", "try",
		"catch", "finally", "throw", "enum", "me", "self", "and", "or", "native", "private",
		"protected", "public", "typedef")},
	{TypeConstant, words("true", "false", "null", "NaN")},
	{TypeDatatype, words("Number", "Float", "Long", "Double", "String", "Boolean", "Char",
		"Array", "Dictionary", "Symbol", "Object", "Method", "Void")},
	{TypeSymbol, `(?<![\w)\]]):[a-z_]\w*`},
	{TypeFunction, callName},
	{TypeNumber, `\b0x[\da-f]+l?\b|\b\d+(?:\.\d+)?[ldf]?\b`},
	{TypeOperator, cOperator},
	{TypeVariable, identifier},
}

var rustRules = []Rule{
	{TypeComment, lineCommentSlash},
	{TypeComment, blockComment},
	{TypeLifetime, `'[a-z_]\w*\b(?!')`},
	{TypeString, `(?:\bb)?'(?:\\(?:x[\da-f]{2}|u\{[\da-f]{1,6}\}|.)|[^'\\\n])'`},
	{TypeString, `\bb?r#*"[\s\S]*?"#*`},
	{TypeString, `(?:\bb)?"(?:\\[\s\S]|[^"\\])*"`},
	{TypeAnnotation, `#!?\[[^\]\n]*\]`},
	{TypeMacro, `\b[a-z_]\w*!(?=\s*[(\[{])`},
	{TypeKeyword, words("as", "async", "await", "break", "const", "continue", "crate",
		"dyn", "else", "enum", "extern", "fn", "for", "if", "impl", "in", "let", "loop",
		"match", "mod", "move", "mut", "pub", "ref", "return", "self", "static", "struct",
		"super", "trait", "type", "unsafe", "use", "where", "while")},
	{TypeDatatype, words("i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32",
		"u64", "u128", "usize", "f32", "f64", "bool", "char", "str", "String", "Vec",
		"Option", "Result", "Box", "Rc", "Arc", "HashMap", "Self")},
	{TypeConstant, words("true", "false", "None", "Some", "Ok", "Err")},
	{TypeNamespace, `\b[a-z_]\w*(?=::)`},
	{TypeFunction, callName},
	{TypeNumber, `\b0x[\da-f_]+(?:[iu](?:8|16|32|64|128|size))?\b|\b\d[\d_]*(?:\.\d[\d_]*)?(?:e[+-]?\d+)?(?:[iu](?:8|16|32|64|128|size)|f32|f64)?\b`},
	{TypeOperator, `=>|->|::|\.\.=?|&&|\|\||[-+*/%=<>!&|^?]=?`},
	{TypeVariable, identifier},
}

var assemblyRules = []Rule{
	{TypeComment, `;.*|//.*|(?<=^[ \t]*)[#@].*`},
	{TypeString, doubleQuoted},
	{TypeString, `'(?:\\.|[^'\\\n])*'`},
	{TypeLabel, `(?<=^[ \t]*)[a-z_.$][\w.$]*:`},
	{TypeDirective, `\.[a-z_]\w*`},
	{TypeRegister, `%[a-z]\w*|` + words(`[re]?[abcd]x`, `[abcd][hl]`, `[re]?[sd]il?`,
		`[re]?[sb]pl?`, `r(?:[89]|1[0-5])[dwb]?`, `[xw](?:[12]?\d|3[01])`, "sp", "lr",
		"pc", "fp", `[xyz]mm\d+`, `[cdefgs]s`)},
	{TypeInstruction, `(?<=^[ \t]*(?:[a-z_.$][\w.$]*:[ \t]*)?)[a-z][a-z0-9.]*\b`},
	{TypeNumber, `\$?-?(?:\b0x[\da-f]+\b|\b0b[01]+\b|\b\d+\b)|#-?\d+`},
	{TypeOperator, `[-+*/,\[\]()!]`},
	{TypeVariable, `\b[a-z_.$][\w.$]*\b`},
}

var jsonRules = []Rule{
	{TypeKey, doubleQuoted + `(?=\s*:)`},
	{TypeString, doubleQuoted},
	{TypeNumber, `-?\b\d+(?:\.\d+)?(?:e[+-]?\d+)?\b`},
	{TypeConstant, words("true", "false", "null")},
	{TypePunctuation, `[{}\[\],:]`},
}

var cssRules = []Rule{
	{TypeComment, blockComment},
	{TypeString, doubleQuoted},
	{TypeString, singleQuoted},
	{TypeKeyword, `@[a-z-]+|!important\b`},
	{TypeNumber, `#[\da-f]{3,8}\b(?![^{};\n]*\{)`},
	{TypeSelector, `[.#][a-z_-][\w-]*|::?[a-z-]+(?:\([^)\n]*\))?(?=[^{};\n]*\{)`},
	{TypeVariable, `--[a-z_][\w-]*`},
	{TypeProperty, `\b[a-z-]+(?=\s*:(?!:)(?![^;{}\n]*\{))`},
	{TypeFunction, `\b[a-z-]+(?=\()`},
	{TypeNumber, `-?(?:\b\d+(?:\.\d+)?|\.\d+)(?:px|em|rem|%|vh|vw|vmin|vmax|s|ms|deg|fr|pt|ch|ex)?`},
	{TypePunctuation, `[{}();,]`},
	{TypeOperator, `[>+~*=]`},
}

var htmlRules = []Rule{
	{TypeComment, `<!--[\s\S]*?-->`},
	{TypeKeyword, `<!doctype[^>]*>`},
	{TypeTag, `</?[a-z][\w:-]*|/?>`},
	{TypeAttribute, `(?<![\w:.-])[a-z_:@][\w:.-]*(?=\s*=\s*["'])`},
	{TypeString, `"[^"]*"|'[^']*'`},
	{TypeEntity, `&#?[\da-z]+;`},
}

var xmlRules = []Rule{
	{TypeComment, `<!--[\s\S]*?-->`},
	{TypePreprocessor, `<\?[\s\S]*?\?>`},
	{TypeString, `<!\[CDATA\[[\s\S]*?\]\]>`},
	{TypeKeyword, `<!doctype[^>]*>`},
	{TypeTag, `</?[a-z_][\w:.-]*|/?>`},
	{TypeAttribute, `(?<![\w:.-])[a-z_:][\w:.-]*(?=\s*=\s*["'])`},
	{TypeString, `"[^"]*"|'[^']*'`},
	{TypeEntity, `&#?[\da-z]+;`},
}

var dockerfileRules = []Rule{
	{TypeComment, `(?<=^[ \t]*)#.*`},
	{TypeKeyword, `(?<=^[ \t]*)` + words("FROM", "RUN", "CMD", "LABEL", "MAINTAINER",
		"EXPOSE", "ENV", "ADD", "COPY", "ENTRYPOINT", "VOLUME", "USER", "WORKDIR", "ARG",
		"ONBUILD", "STOPSIGNAL", "HEALTHCHECK", "SHELL")},
	{TypeKeyword, `\bAS\b(?<=^[ \t]*FROM\s.*AS)`},
	{TypeString, `"(?:\\.|[^"\\])*"`},
	{TypeString, `'[^'\n]*'`},
	{TypeVariable, `\$\{[^}\n]*\}|\$[a-z_]\w*`},
	{TypeFlag, `--[a-z][\w-]*(?:=\S*)?`},
	{TypeNumber, `\b\d+(?:\.\d+)*\b`},
	{TypeOperator, `&&|\|\||\\$|[|;=]`},
}

var makefileRules = []Rule{
	{TypeComment, `#.*`},
	{TypeVariable, `\$\([^)\n]*\)|\$\{[^}\n]*\}|\$[@<^?*%+|]|\$\$`},
	{TypeKeyword, `(?<=^[ \t]*)-?` + words("ifeq", "ifneq", "ifdef", "ifndef", "else",
		"endif", "include", "sinclude", "define", "endef", "export", "unexport",
		"override", "vpath")},
	{TypeKeyword, `^\.[A-Z_]+(?=\s*:)`},
	{TypeVariable, `^[a-z_][\w.-]*(?=\s*(?:[:+?!]?=))`},
	{TypeTarget, `^[^\s:=#][^:=#\n]*(?=::?(?!=))`},
	{TypeString, doubleQuoted},
	{TypeString, singleQuoted},
	{TypeOperator, `::?=|\?=|\+=|!=|=|::?|\|`},
}

// registry holds the ordered rules of every language. It is indexed by
// Language so a missing entry is an empty slot, never a silent default.
var registry = [languageCount][]Rule{
	Unrecognized: nil,
	Python:       pythonRules,
	TypeScript:   typescriptRules,
	JavaScript:   javascriptRules,
	Bash:         bashRules,
	C:            cRules,
	CPP:          cppRules,
	CSharp:       csharpRules,
	Swift:        swiftRules,
	PHP:          phpRules,
	SQL:          sqlRules,
	MonkeyC:      monkeyCRules,
	Rust:         rustRules,
	Assembly:     assemblyRules,
	JSON:         jsonRules,
	CSS:          cssRules,
	HTML:         htmlRules,
	XML:          xmlRules,
	Dockerfile:   dockerfileRules,
	Makefile:     makefileRules,
}

// Rules returns a copy of the ordered rules for lang, or nil when the
// language has no pattern set.
func Rules(lang Language) []Rule {
	if !lang.Known() {
		return nil
	}
	return append([]Rule(nil), registry[lang]...)
}

func concat(sets ...[]Rule) []Rule {
	var out []Rule
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
