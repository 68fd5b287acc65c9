/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package env

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// 环境变量名。命令行参数优先于环境变量。
const (
	KeyLogLevel  = "POI2GEO_LOG_LEVEL"
	KeyOutputDir = "POI2GEO_OUTPUT_DIR"
	KeyPrecision = "POI2GEO_PRECISION"
	KeyFormats   = "POI2GEO_FORMATS"
)

// Load 加载 .env 文件，已存在的进程环境变量不会被覆盖。
// 未指定 path 时尝试当前目录下的 .env，文件不存在不算错误；显式指定的文件必须存在。
func Load(path string) (bool, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("加载环境文件 %s 失败: %w", path, err)
	}
	return true, nil
}

// String 返回去掉首尾空白的环境变量值，为空时返回 def。
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Int 返回整数环境变量，缺失或无法解析时返回 def。
func Int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// List 把逗号分隔的环境变量拆分为非空项。
func List(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
