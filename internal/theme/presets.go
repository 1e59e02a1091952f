// Package theme maps token classes to colors and CSS class names.
package theme

import "github.com/zjrosen/prism/internal/lexer"

// Name identifies a built-in color theme.
type Name string

const (
	Default Name = "default"
	Dark    Name = "dark"
	Light   Name = "light"
)

// Names lists the built-in themes in display order.
var Names = []Name{Default, Dark, Light}

// Palette is a complete color theme.
type Palette struct {
	Name        Name
	Description string

	Foreground       string
	Background       string
	SearchBackground string
	// Fallback colors untyped text and classes missing from Colors.
	Fallback string

	Colors map[lexer.TokenType]string
}

// DefaultPalette is a light-background scheme close to common editor defaults.
var DefaultPalette = Palette{
	Name:             Default,
	Description:      "Default prism theme",
	Foreground:       "#24292E",
	Background:       "#FFFFFF",
	SearchBackground: "#FFE58F",
	Fallback:         "#24292E",
	Colors: map[lexer.TokenType]string{
		// Core classes
		lexer.TypeKeyword:  "#D73A49",
		lexer.TypeString:   "#032F62",
		lexer.TypeComment:  "#6A737D",
		lexer.TypeNumber:   "#005CC5",
		lexer.TypeOperator: "#D73A49",
		lexer.TypeFunction: "#6F42C1",
		lexer.TypeVariable: "#24292E",
		lexer.TypeDatatype: "#E36209",
		lexer.TypeBuiltin:  "#005CC5",
		lexer.TypeConstant: "#005CC5",

		// Data formats and markup
		lexer.TypeKey:         "#22863A",
		lexer.TypePunctuation: "#586069",
		lexer.TypeTag:         "#22863A",
		lexer.TypeAttribute:   "#6F42C1",
		lexer.TypeJSXTag:      "#22863A",
		lexer.TypeEntity:      "#E36209",
		lexer.TypeSelector:    "#6F42C1",
		lexer.TypeProperty:    "#005CC5",

		// Language specific
		lexer.TypeDecorator:    "#E36209",
		lexer.TypeAnnotation:   "#E36209",
		lexer.TypePreprocessor: "#D73A49",
		lexer.TypeDirective:    "#D73A49",
		lexer.TypeRegister:     "#E36209",
		lexer.TypeLabel:        "#22863A",
		lexer.TypeInstruction:  "#6F42C1",
		lexer.TypeMacro:        "#6F42C1",
		lexer.TypeLifetime:     "#E36209",
		lexer.TypeNamespace:    "#6F42C1",
		lexer.TypeSymbol:       "#005CC5",
		lexer.TypeTarget:       "#6F42C1",
		lexer.TypeRegex:        "#032F62",
		lexer.TypeFlag:         "#005CC5",
	},
}

// DarkPalette is a dark scheme.
// Colors from: https://catppuccin.com/palette (Mocha flavor).
var DarkPalette = Palette{
	Name:             Dark,
	Description:      "Dark theme based on Catppuccin Mocha",
	Foreground:       "#CDD6F4", // text
	Background:       "#1E1E2E", // base
	SearchBackground: "#585B70", // surface2
	Fallback:         "#CDD6F4",
	Colors: map[lexer.TokenType]string{
		lexer.TypeKeyword:  "#CBA6F7", // mauve
		lexer.TypeString:   "#A6E3A1", // green
		lexer.TypeComment:  "#6C7086", // overlay0
		lexer.TypeNumber:   "#FAB387", // peach
		lexer.TypeOperator: "#89DCEB", // sky
		lexer.TypeFunction: "#89B4FA", // blue
		lexer.TypeVariable: "#CDD6F4",
		lexer.TypeDatatype: "#F9E2AF", // yellow
		lexer.TypeBuiltin:  "#F38BA8", // red
		lexer.TypeConstant: "#FAB387",

		lexer.TypeKey:         "#89B4FA",
		lexer.TypePunctuation: "#9399B2", // overlay2
		lexer.TypeTag:         "#CBA6F7",
		lexer.TypeAttribute:   "#F9E2AF",
		lexer.TypeJSXTag:      "#CBA6F7",
		lexer.TypeEntity:      "#FAB387",
		lexer.TypeSelector:    "#89B4FA",
		lexer.TypeProperty:    "#94E2D5", // teal

		lexer.TypeDecorator:    "#F5C2E7", // pink
		lexer.TypeAnnotation:   "#F5C2E7",
		lexer.TypePreprocessor: "#F38BA8",
		lexer.TypeDirective:    "#F38BA8",
		lexer.TypeRegister:     "#94E2D5",
		lexer.TypeLabel:        "#F9E2AF",
		lexer.TypeInstruction:  "#CBA6F7",
		lexer.TypeMacro:        "#F5C2E7",
		lexer.TypeLifetime:     "#FAB387",
		lexer.TypeNamespace:    "#F9E2AF",
		lexer.TypeSymbol:       "#F2CDCD", // flamingo
		lexer.TypeTarget:       "#89B4FA",
		lexer.TypeRegex:        "#F5C2E7",
		lexer.TypeFlag:         "#94E2D5",
	},
}

// LightPalette is a light scheme.
// Colors from: https://catppuccin.com/palette (Latte flavor).
var LightPalette = Palette{
	Name:             Light,
	Description:      "Light theme based on Catppuccin Latte",
	Foreground:       "#4C4F69", // text
	Background:       "#EFF1F5", // base
	SearchBackground: "#DF8E1D", // yellow
	Fallback:         "#4C4F69",
	Colors: map[lexer.TokenType]string{
		lexer.TypeKeyword:  "#8839EF", // mauve
		lexer.TypeString:   "#40A02B", // green
		lexer.TypeComment:  "#9CA0B0", // overlay0
		lexer.TypeNumber:   "#FE640B", // peach
		lexer.TypeOperator: "#04A5E5", // sky
		lexer.TypeFunction: "#1E66F5", // blue
		lexer.TypeVariable: "#4C4F69",
		lexer.TypeDatatype: "#DF8E1D", // yellow
		lexer.TypeBuiltin:  "#D20F39", // red
		lexer.TypeConstant: "#FE640B",

		lexer.TypeKey:         "#1E66F5",
		lexer.TypePunctuation: "#7C7F93", // overlay2
		lexer.TypeTag:         "#8839EF",
		lexer.TypeAttribute:   "#DF8E1D",
		lexer.TypeJSXTag:      "#8839EF",
		lexer.TypeEntity:      "#FE640B",
		lexer.TypeSelector:    "#1E66F5",
		lexer.TypeProperty:    "#179299", // teal

		lexer.TypeDecorator:    "#EA76CB", // pink
		lexer.TypeAnnotation:   "#EA76CB",
		lexer.TypePreprocessor: "#D20F39",
		lexer.TypeDirective:    "#D20F39",
		lexer.TypeRegister:     "#179299",
		lexer.TypeLabel:        "#DF8E1D",
		lexer.TypeInstruction:  "#8839EF",
		lexer.TypeMacro:        "#EA76CB",
		lexer.TypeLifetime:     "#FE640B",
		lexer.TypeNamespace:    "#DF8E1D",
		lexer.TypeSymbol:       "#DD7878", // flamingo
		lexer.TypeTarget:       "#1E66F5",
		lexer.TypeRegex:        "#EA76CB",
		lexer.TypeFlag:         "#179299",
	},
}

var builtin = Palettes{
	Default: DefaultPalette,
	Dark:    DarkPalette,
	Light:   LightPalette,
}
