package engine

import "strings"

var abbreviations = map[string]string{
	// Common Nouns
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "hp": "phone", "ph": "phone", "mobile": "phone",
	"biz": "business", "pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "pic": "image", "url": "url", "link": "url", "website": "url",
	"ip": "ip", "zip": "zipcode", "postcode": "zipcode", "postal": "zipcode",
	"msg": "message", "txt": "text", "tit": "title", "subj": "subject", "headline": "title",
	"doc": "document", "usr": "user", "emp": "employee",
	"dept": "department", "grp": "group", "cat": "category",
	"loc": "location", "lat": "latitude", "lng": "longitude", "lon": "longitude",
	"st": "street", "prov": "province", "dist": "district",
	"bal": "balance", "avg": "average",

	// Verbs / Status
	"reg": "registered", "mod": "modified", "del": "deleted", "cre": "created",
	"upd": "updated", "yn": "yesno", "stat": "status", "sts": "status",
	"typ": "type", "val": "value",
	"ord": "order", "seq": "sequence", "idx": "index",
	"is": "yesno", "has": "yesno", "flg": "flag",
}

// meaningKeywords maps a meaning to the words that reveal it, checked in
// order against the column comment and then the decoded column name.
var meaningKeywords = []struct {
	meaning  string
	keywords []string
}{
	{"email", []string{"email", "mail"}},
	{"phone", []string{"phone", "fax"}},
	{"password", []string{"password"}},
	{"url", []string{"url", "homepage"}},
	{"zipcode", []string{"zipcode", "zip"}},
	{"address", []string{"address", "street"}},
	{"city", []string{"city", "town"}},
	{"country", []string{"country", "nationality"}},
	{"ip", []string{"ip"}},
	{"year", []string{"year"}},
	{"yesno", []string{"yesno", "flag", "active", "enabled"}},
	{"price", []string{"price", "cost", "amount", "balance", "salary"}},
	{"count", []string{"count", "quantity", "number"}},
	{"name", []string{"name", "author", "username"}},
	{"title", []string{"title", "subject", "headline"}},
	{"description", []string{"description", "summary", "content", "comment", "message", "text", "body"}},
	{"date", []string{"date", "time", "created", "updated", "deleted", "registered", "modified"}},
}

// AnalyzeMeaning guesses what a column holds from its comment and name.
// Abbreviated name parts are expanded first ("usr_nm" -> "user name").
func AnalyzeMeaning(colName, comment string) string {
	c := strings.ToLower(comment)
	if m := matchMeaning(strings.Fields(c)); m != "" {
		return m
	}

	// Abbreviation analysis from the column name
	parts := strings.Split(strings.ToLower(colName), "_")
	var decodedParts []string
	for _, part := range parts {
		if full, ok := abbreviations[part]; ok {
			decodedParts = append(decodedParts, full)
		} else {
			decodedParts = append(decodedParts, part)
		}
	}

	if m := matchMeaning(decodedParts); m != "" {
		return m
	}
	return strings.Join(decodedParts, " ")
}

func matchMeaning(words []string) string {
	for _, mk := range meaningKeywords {
		for _, kw := range mk.keywords {
			for _, w := range words {
				if w == kw {
					return mk.meaning
				}
			}
		}
	}
	return ""
}
