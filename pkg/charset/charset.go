/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 本文件负责两件事：
//   - 读入：把 payload 文件统一解码为 UTF-8（UTF-8/BOM、带 BOM 的 UTF-16、GB18030）；
//   - 写出：把 DBF 属性编码为 GBK，并按字节宽度在字符边界截断。

// Supported encodings 标识字符串常量。
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"
	EncodingUTF16LE = "utf-16-le"
	EncodingUTF16BE = "utf-16-be"
	EncodingGB18030 = "gb18030"
	EncodingUnknown = "unknown"
)

// ErrUndecodable 表示内容既不是合法 UTF-8 也无法按 GB18030 解码。
var ErrUndecodable = errors.New("content encoding not recognized")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect 通过 BOM 与严格解码判断编码；空数据视作 UTF-8。
func Detect(data []byte) string {
	switch {
	case len(data) == 0:
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	case isGB18030(data):
		return EncodingGB18030
	}
	return EncodingUnknown
}

// isGB18030 以严格模式尝试 GB18030 解码，无错误即认为匹配。
func isGB18030(data []byte) bool {
	_, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	return err == nil
}

// Decode 将输入统一转换为 UTF-8 字符串，并返回检测到的原始编码。
func Decode(data []byte) (string, string, error) {
	enc := Detect(data)
	var dec *encoding.Decoder
	switch enc {
	case EncodingUTF8:
		return string(data), enc, nil
	case EncodingUTF8BOM:
		return string(data[len(bomUTF8):]), enc, nil
	case EncodingUTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case EncodingUTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case EncodingGB18030:
		dec = simplifiedchinese.GB18030.NewDecoder()
	default:
		return "", enc, ErrUndecodable
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", enc, fmt.Errorf("%s 解码失败: %w", enc, err)
	}
	return string(out), enc, nil
}

// gbkEncoder 对 GBK 无法表示的字符以替换符输出，不报错。
var gbkEncoder = encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder())

// EncodeGBK 将 UTF-8 文本编码为 GBK。
func EncodeGBK(s string) []byte {
	out, _, err := transform.String(gbkEncoder, s)
	if err != nil {
		return []byte(s)
	}
	return []byte(out)
}

// TruncateGBK 编码为 GBK 并保证结果不超过 maxBytes，截断发生在字符边界。
// maxBytes <= 0 时不截断。
func TruncateGBK(s string, maxBytes int) []byte {
	full := EncodeGBK(s)
	if maxBytes <= 0 || len(full) <= maxBytes {
		return full
	}
	out := make([]byte, 0, maxBytes)
	for _, r := range s {
		b := EncodeGBK(string(r))
		if len(out)+len(b) > maxBytes {
			break
		}
		out = append(out, b...)
	}
	return out
}
