package model

import (
	"bytes"

	"github.com/origadmin/wrapgen/internal/config"
)

// GenerationContext 包含代码生成所需的所有上下文信息
type GenerationContext struct {
	Config *config.Config
	// Registries 是重写之后的注册表
	Registries *Registries
}

// TypeRewriter 定义类型重写接口
type TypeRewriter interface {
	Rewrite(regs *Registries) *Registries
}

// TypeFormatter 定义原始类型到 cgo 类型的拼写接口
type TypeFormatter interface {
	Format(raw string) (string, bool)
}

// ImportManager 定义导入管理接口
type ImportManager interface {
	Add(importPath string)
	GetAllImports() []string
	WriteImportsToBuffer(buf *bytes.Buffer)
}

// CodeEmitter 定义代码输出接口
type CodeEmitter interface {
	EmitHeader(buf *bytes.Buffer) error
	EmitEnums(buf *bytes.Buffer) error
	EmitHandles(buf *bytes.Buffer) error
}
