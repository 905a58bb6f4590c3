package searchpage

import (
	"net/url"
	"strings"
)

// queryParam - пара ключ/значение с сохранением порядка.
// url.Values.Encode сортирует ключи, а нам нужен фиксированный порядок.
type queryParam struct {
	key   string
	value string
}

type orderedParams []queryParam

func (p *orderedParams) add(key, value string) {
	*p = append(*p, queryParam{key: key, value: value})
}

func (p orderedParams) get(key string) (string, bool) {
	for _, param := range p {
		if param.key == key {
			return param.value, true
		}
	}
	return "", false
}

func (p orderedParams) encode() string {
	var sb strings.Builder
	for i, param := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(param.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(param.value))
	}
	return sb.String()
}

func (p orderedParams) values() url.Values {
	values := make(url.Values, len(p))
	for _, param := range p {
		values.Add(param.key, param.value)
	}
	return values
}
