package source

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reLink = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)

// StripLinks вырезает встроенные ссылки и схлопывает пробелы.
func StripLinks(s string) string {
	return CollapseSpaces(reLink.ReplaceAllString(s, " "))
}

// CollapseSpaces заменяет любые последовательности пробельных символов одним пробелом.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate обрезает строку до n рун, помечая обрезку многоточием "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	if n <= 3 {
		return string(runes[:n])
	}

	return strings.TrimSpace(string(runes[:n-3])) + "..."
}

// StripHTML возвращает текстовое содержимое HTML-фрагмента.
// Содержимое script/style отбрасывается.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseSpaces(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return CollapseSpaces(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// CanonicalLink нормализует ссылку: убирает фрагмент и трекинговые параметры
// (utm_*, *clid, mc_*, igshid). Не-http(s) ссылки возвращаются как есть.
func CanonicalLink(raw string) string {
	str := strings.TrimSpace(raw)

	u, err := url.Parse(str)
	if err != nil {
		return str
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return str
	}

	u.Fragment = ""
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || strings.HasSuffix(lk, "clid") || strings.HasPrefix(lk, "mc_") || lk == "igshid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}
