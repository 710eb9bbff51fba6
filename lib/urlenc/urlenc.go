// Package urlenc compresses a JSON-encoded diagram literal (see
// raildiagram.FromLiteral) into a URL-safe string, for embedding a
// shareable diagram inside a link. The compression dictionary is seeded
// with the tag and field names raildiagram.FromLiteral expects, since
// those are the tokens a JSON-encoded diagram literal repeats most.
package urlenc

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"io"
	"sort"
	"strings"

	"oss.terrastruct.com/util-go/xdefer"
)

var literalTokens = []string{
	"tag", "text", "href", "title", "css_class", "payload", "children",
	"breaks", "default", "child", "body", "repeat", "repeat_top",
	"skip", "skip_bottom",
	"terminal", "non_terminal", "comment", "sequence", "stack",
	"choice", "optional", "one_or_more", "zero_or_more", "barrier", "group",
	"HARD", "SOFT", "NO_BREAK", "DEFAULT",
}

var compressionDict = buildDict()

func buildDict() string {
	sorted := append([]string(nil), literalTokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, "")
}

// Encode compresses and base64url-encodes a JSON diagram literal.
func Encode(raw string) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to encode diagram literal")

	b := &bytes.Buffer{}
	zw, err := flate.NewWriterDict(b, flate.DefaultCompression, []byte(compressionDict))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(zw, strings.NewReader(raw)); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b.Bytes()), nil
}

// Decode reverses Encode.
func Decode(encoded string) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to decode diagram literal")

	b64Decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	zr := flate.NewReaderDict(bytes.NewReader(b64Decoded), []byte(compressionDict))
	var b bytes.Buffer
	if _, err := io.Copy(&b, zr); err != nil {
		return "", err
	}
	if err := zr.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}
