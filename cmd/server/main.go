package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title caiary API
// @version 1.0
// @description 日记、关注、点赞与时间线服务
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var configPath string

var rootCmd = &cobra.Command{
	Use:   "caiary",
	Short: "caiary 日记服务",
	// 不带子命令时直接启动服务
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.AddCommand(serverCmd, migrateCmd, docsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
