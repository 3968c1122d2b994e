package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "根据接口注释生成 Swagger 文档",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateSwagger(cmd.Context())
	},
}

// generateSwagger 调用 swag init，输出到 docs 目录
func generateSwagger(ctx context.Context) error {
	args := []string{
		"run",
		"github.com/swaggo/swag/cmd/swag@latest",
		"init",
		"-g",
		"cmd/server/main.go",
		"-o",
		"docs",
		"--parseDependency",
		"--parseInternal",
	}

	// 限制执行时间，避免下载依赖时卡住
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("swag init 失败: %w; stdout: %s; stderr: %s",
			err, strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()))
	}

	fmt.Println("swag init 完成")
	return nil
}
