// Package glsl rewrites GLSL ES 1.00 sources so that a desktop OpenGL 4.1
// core profile accepts them.
package glsl

import (
	"regexp"
	"strings"
)

type Stage int

const (
	Vertex Stage = iota
	Fragment
)

// Version is the directive prepended to every translated source.
const Version = "#version 410 core"

// FragColor replaces gl_FragColor in fragment shaders.
const FragColor = "fragColor"

var (
	versionLine   = regexp.MustCompile(`(?m)^[ \t]*#version[^\n]*\n?`)
	precisionLine = regexp.MustCompile(`(?m)^[ \t]*precision[ \t]+\w+[ \t]+\w+[ \t]*;[ \t]*\n?`)
	attribute     = regexp.MustCompile(`\battribute\b`)
	varying       = regexp.MustCompile(`\bvarying\b`)
	fragColor     = regexp.MustCompile(`\bgl_FragColor\b`)
	texture2D     = regexp.MustCompile(`\btexture2D\s*\(`)
	textureCube   = regexp.MustCompile(`\btextureCube\s*\(`)
)

// Translate converts src for stage. Sources that already carry a desktop
// #version directive are returned unchanged.
func Translate(src string, stage Stage) string {
	if m := versionLine.FindString(src); m != "" && !strings.Contains(m, " es") && !strings.Contains(m, "100") {
		return src
	}

	out := versionLine.ReplaceAllString(src, "")
	out = precisionLine.ReplaceAllString(out, "")
	out = texture2D.ReplaceAllString(out, "texture(")
	out = textureCube.ReplaceAllString(out, "texture(")

	var b strings.Builder
	b.WriteString(Version)
	b.WriteByte('\n')

	switch stage {
	case Vertex:
		out = attribute.ReplaceAllString(out, "in")
		out = varying.ReplaceAllString(out, "out")
	case Fragment:
		out = varying.ReplaceAllString(out, "in")
		if fragColor.MatchString(out) {
			out = fragColor.ReplaceAllString(out, FragColor)
			b.WriteString("out vec4 " + FragColor + ";\n")
		}
	}

	b.WriteString(out)
	return b.String()
}
