package parser

import "github.com/toyz/dualgen/internal/models"

const (
	// SourceExtension is the extension of files the parser reads
	SourceExtension = ".java"

	// ImplicitPackage is imported into every compilation unit
	ImplicitPackage = "java.lang"

	// PackageInfoFile and ModuleInfoFile hold no type declarations
	PackageInfoFile = "package-info.java"
	ModuleInfoFile  = "module-info.java"
)

// modifierKeywords maps modifier words to models.Modifier. non-sealed is
// lexed as three tokens and handled separately.
var modifierKeywords = map[string]models.Modifier{
	"public":       models.ModPublic,
	"protected":    models.ModProtected,
	"private":      models.ModPrivate,
	"abstract":     models.ModAbstract,
	"static":       models.ModStatic,
	"final":        models.ModFinal,
	"default":      models.ModDefault,
	"sealed":       models.ModSealed,
	"strictfp":     models.ModStrictfp,
	"transient":    "transient",
	"volatile":     "volatile",
	"synchronized": "synchronized",
	"native":       "native",
}

// declarationKeywords maps type declaration keywords to their kind
var declarationKeywords = map[string]models.DeclarationKind{
	"class":     models.DeclClass,
	"interface": models.DeclInterface,
	"enum":      models.DeclEnum,
	"record":    models.DeclRecord,
}

// memberKindWords names nested declarations in OtherMember.Kind
var memberKindWords = map[models.DeclarationKind]string{
	models.DeclClass:      "class",
	models.DeclInterface:  "interface",
	models.DeclEnum:       "enum",
	models.DeclRecord:     "record",
	models.DeclAnnotation: "annotation",
}
