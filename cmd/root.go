/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"poi2geo/internal/env"
	"poi2geo/internal/export"
	"poi2geo/internal/version"
	"poi2geo/pkg/logger"
)

var (
	logLevel string
	envFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "poi2geo [payload-paths...]",
	Short:   "高德 POI 面数据转换工具",
	Long:    "POI2GEO 将网页端抓取的高德 POI 详情响应中的面数据（GCJ-02）纠正为 WGS-84，并导出为 GeoJSON 或 Shapefile。\n直接传入文件或目录时使用默认配置快速导出。",
	Args:    cobra.ArbitraryArgs,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := env.Load(envFile)
		if err != nil {
			return err
		}
		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			level = env.String(env.KeyLogLevel, logLevel)
		}
		logger.Init(level)
		if loaded {
			logger.Log().Debug("已加载环境文件", "file", envFile)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		logger.Log().Info("正在以默认配置快速处理...", "inputs", len(args))
		for i, path := range args {
			logger.Log().Info(fmt.Sprintf("  %d. %s%s", i+1, path, describePath(path)))
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		formats := env.List(env.KeyFormats)
		if len(formats) == 0 {
			formats = []string{"GEOJSON", "SHP"}
			if interactive {
				formats = promptFormats(cmd)
			}
		}

		exporter, err := export.NewExporter(export.ExportConfig{
			InputPaths: args,
			Depth:      0,
			FormatKeys: formats,
			OutputDir:  env.String(env.KeyOutputDir, "output"),
			Merge:      true,
		})
		if err != nil {
			return fmt.Errorf("创建导出器失败: %w", err)
		}
		result, execErr := exporter.Execute()
		printSummary(cmd.OutOrStdout(), result)
		if execErr != nil {
			logger.Log().Error("导出失败", "error", execErr)
		} else {
			logger.Log().Info("导出成功完成！")
		}

		if interactive {
			fmt.Fprintln(cmd.OutOrStdout(), "操作已完成，请按下 Enter 键退出程序...")
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		}
		return execErr
	},
}

func describePath(path string) string {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return " (无法访问)"
	case info.IsDir():
		return " (文件夹)"
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return " (JSON 文件)"
	}
	return " (其他文件)"
}

// promptFormats 交互式选择输出格式，无效输入时两种格式都导出。
func promptFormats(cmd *cobra.Command) []string {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "请选择输出格式:")
	fmt.Fprintln(out, "1. GeoJSON")
	fmt.Fprintln(out, "2. SHP (ESRI Shapefile)")
	fmt.Fprintln(out, "3. 两者都导出")
	fmt.Fprint(out, "输入序号并回车: ")
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.TrimSpace(line) {
	case "1":
		return []string{"GEOJSON"}
	case "2":
		return []string{"SHP"}
	case "3":
	default:
		fmt.Fprintln(out, "无效选择，默认导出两种格式。")
	}
	return []string{"GEOJSON", "SHP"}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.MousetrapHelpText = ""
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log levels (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "环境变量文件，默认尝试当前目录下的 .env")
}
