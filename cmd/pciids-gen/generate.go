package main

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pciids/pciids-go/pkg/pciids"
)

// funcMap provides helper functions available to the templates.
var funcMap = template.FuncMap{
	"hexByte": func(v uint8) string { return fmt.Sprintf("0x%02X", v) },
	"quote":   func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(classConstantsTmpl))

const classConstantsTmpl = `{{define "classConstants"}}// Code generated by pciids-gen. DO NOT EDIT.

package {{.Package}}

// PCI device class ids.
const (
{{- range .Classes}}
	// {{.Const}} is the {{quote .Name}} class.
	{{.Const}} uint8 = {{hexByte .ID}}
{{- end}}
)
{{end}}`

type classConstData struct {
	Const string
	Name  string
	ID    uint8
}

type classConstantsData struct {
	Package string
	Classes []classConstData
}

// GenerateClassConstants renders one constant per class of the table.
// Classes whose names map to the same identifier get their id appended.
func GenerateClassConstants(pkg string, tbl *pciids.Table) (string, error) {
	data := classConstantsData{Package: pkg}
	seen := make(map[string]bool)

	for c := range tbl.Classes() {
		name := "Class" + goIdentifier(c.Name())
		if seen[name] {
			name = fmt.Sprintf("%s%02X", name, c.ID())
		}
		seen[name] = true
		data.Classes = append(data.Classes, classConstData{Const: name, Name: c.Name(), ID: c.ID()})
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "classConstants", data); err != nil {
		return "", fmt.Errorf("template classConstants: %w", err)
	}
	return b.String(), nil
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// goIdentifier converts a record name such as "Non-Essential Instrumentation"
// into an exported identifier fragment ("NonEssentialInstrumentation").
func goIdentifier(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(titleCaser.String(f))
	}
	out := b.String()
	if out == "" || !unicode.IsLetter([]rune(out)[0]) {
		out = "X" + out
	}
	return out
}
