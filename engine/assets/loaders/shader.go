package loaders

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

//go:embed builtin/agents.wgsl
var builtinAgentShader string

// ShaderParams are substituted into shader templates.
type ShaderParams struct {
	Width, Height uint32
}

// AspectRatio is width over height, 1 for an empty viewport.
func (p ShaderParams) AspectRatio() float64 {
	if p.Width == 0 || p.Height == 0 {
		return 1
	}
	return float64(p.Width) / float64(p.Height)
}

// Aspect is AspectRatio formatted as a WGSL float literal.
func (p ShaderParams) Aspect() string {
	if p.Width == 0 || p.Height == 0 {
		return "1.0"
	}
	return strconv.FormatFloat(p.AspectRatio(), 'f', 6, 64)
}

type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, assetType ResourceType, params interface{}) (*Resource, error) {
	p, ok := params.(ShaderParams)
	if !ok {
		return nil, fmt.Errorf("failed to cast params in shader loader")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	source, err := RenderShader(name, string(data), p)
	if err != nil {
		return nil, err
	}
	return &Resource{
		Name:     name,
		FullPath: path,
		DataSize: uint64(len(source)),
		Data:     source,
	}, nil
}

func (sl *ShaderLoader) Unload(*Resource) error {
	return nil
}

// RenderShader executes a shader template against params.
func RenderShader(name, text string, params ShaderParams) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse shader %s: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, params); err != nil {
		return "", fmt.Errorf("render shader %s: %w", name, err)
	}
	return sb.String(), nil
}

// BuiltinAgentShader renders the agent shader compiled into the binary.
func BuiltinAgentShader(params ShaderParams) (string, error) {
	return RenderShader("agents", builtinAgentShader, params)
}
