package csv

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// sniffSize is how much of a file the charset detector looks at.
const sniffSize = 10000

type detectFunc func(sample []byte) string

// Decode converts raw file content to UTF-8. It tries the charset guessed
// from the first 10000 bytes, then UTF-8, then Windows-1251, and returns
// the name of the charset that worked.
func Decode(raw []byte) (string, string, error) {
	return decode(raw, detectCharset)
}

func decode(raw []byte, detect detectFunc) (string, string, error) {
	var tried []string
	if name := detect(raw[:min(len(raw), sniffSize)]); name != "" {
		if s, ok := decodeAs(raw, name); ok {
			return s, name, nil
		}
		tried = append(tried, name)
	}
	if utf8.Valid(raw) {
		return string(raw), "UTF-8", nil
	}
	tried = append(tried, "UTF-8")
	if s, ok := decodeWith(raw, charmap.Windows1251); ok {
		return s, "windows-1251", nil
	}
	tried = append(tried, "windows-1251")
	return "", "", fmt.Errorf("content is not decodable as %s", strings.Join(tried, ", "))
}

func detectCharset(sample []byte) string {
	if len(sample) == 0 {
		return ""
	}
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return ""
	}
	return res.Charset
}

func decodeAs(raw []byte, charset string) (string, bool) {
	if strings.EqualFold(charset, "UTF-8") {
		return string(raw), utf8.Valid(raw)
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", false
	}
	return decodeWith(raw, enc)
}

// decodeWith fails when the decoder errors or yields U+FFFD or a C1 control
// character, which is how single-byte tables surface undefined bytes.
func decodeWith(raw []byte, enc encoding.Encoding) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil || !utf8.Valid(out) {
		return "", false
	}
	if bytes.ContainsFunc(out, func(r rune) bool { return r == utf8.RuneError || (r >= 0x80 && r <= 0x9f) }) {
		return "", false
	}
	return string(out), true
}
