/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"poi2geo/internal/util"
)

// nameContext 是渲染一个输出名称所需的值。
type nameContext struct {
	Name  string // POI 名称；合并模式为 defaultMergeName
	PoiID string
	City  string
	Index int
	Count int
	Now   time.Time
}

// renderNameTemplate 负责将名称模板中的占位符替换为实际值。
// 支持占位符:
//
//	{name}                 POI 名称（为空时退回 poiid）；合并模式下为 poi_batch
//	{poiid}                POI 标识；合并模式下为空
//	{city}                 城市名称；合并模式下为空
//	{index[:width]}        当前序号，参数的位数决定补零宽度，数值作为偏移
//	{count}                总数量
//	{date[:layout]}        日期 (默认 20060102, 可指定 Go time layout)
//	{uuid}                 随机 UUID v4
//	{rand[:len]}           随机字符串 (默认 8 位)
//
// 所有占位符都可追加 :lower|upper|title 转换大小写。未知占位符原样保留。
func renderNameTemplate(tmpl string, ctx nameContext) string {
	var out strings.Builder
	for len(tmpl) > 0 {
		start := strings.IndexByte(tmpl, '{')
		if start == -1 {
			out.WriteString(tmpl)
			break
		}
		out.WriteString(tmpl[:start])
		tmpl = tmpl[start+1:]
		end := strings.IndexByte(tmpl, '}')
		if end == -1 { // 无闭合，原样输出剩余
			out.WriteString("{" + tmpl)
			break
		}
		out.WriteString(resolveToken(tmpl[:end], ctx))
		tmpl = tmpl[end+1:]
	}
	return out.String()
}

func resolveToken(token string, ctx nameContext) string {
	parts := strings.Split(token, ":")
	name := strings.ToLower(parts[0])
	if name == "" {
		return "{" + token + "}"
	}

	// 大小写修饰可出现在任意参数位置，取最后一次
	caseTransform := ""
	args := make([]string, 0, len(parts)-1)
	for _, a := range parts[1:] {
		switch la := strings.ToLower(a); la {
		case "lower", "upper", "title":
			caseTransform = la
		default:
			args = append(args, a)
		}
	}
	firstArg := ""
	if len(args) > 0 {
		firstArg = args[0]
	}

	var result string
	switch name {
	case "name":
		result = ctx.Name
		if result == "" {
			result = ctx.PoiID
		}
	case "poiid":
		result = ctx.PoiID
	case "city":
		result = ctx.City
	case "index":
		offset, _ := strconv.Atoi(firstArg)
		result = fmt.Sprintf("%0*d", len(firstArg), ctx.Index+offset)
	case "count":
		result = strconv.Itoa(ctx.Count)
	case "date":
		layout := "20060102"
		if firstArg != "" {
			// 布局中可能含冒号（如 15:04），重新拼回
			layout = strings.Join(args, ":")
		}
		now := ctx.Now
		if now.IsZero() {
			now = time.Now()
		}
		result = now.Format(layout)
	case "uuid":
		result = util.NewUUID()
	case "rand":
		length := 8
		if n, err := strconv.Atoi(firstArg); err == nil && n > 0 {
			length = n
		}
		result = util.RandomString(length)
	default:
		return "{" + token + "}"
	}

	switch caseTransform {
	case "lower":
		result = strings.ToLower(result)
	case "upper":
		result = strings.ToUpper(result)
	case "title":
		if r := []rune(result); len(r) > 0 {
			result = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return result
}
