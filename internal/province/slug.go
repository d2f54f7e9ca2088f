package province

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 文档注释：省名转 URL 安全 slug
// 背景：路由层以 slug 拼接地区列表路径；先做去音标折叠，再小写、空白串替换为单个连字符、剔除 [a-z0-9-] 以外字符。
// 约束：输出只含 [a-z0-9-]，对自身输出幂等。
func Slug(name string) string {
	folded, _, _ := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(strings.TrimSpace(name)),
	)
	var b strings.Builder
	b.Grow(len(folded))
	inSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var titleCaser = cases.Title(language.Indonesian)

// 文档注释：slug 还原省名
// 背景：优先返回表中 slug 相同的原始名称（大小写保持一致）；未命中时按单词首字母大写还原。
func NameFromSlug(slug string, table []Coordinate) string {
	for _, c := range table {
		if Slug(c.Name) == slug {
			return c.Name
		}
	}
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' })
	return titleCaser.String(strings.Join(words, " "))
}
