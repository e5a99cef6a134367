package present

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	got := PNGDataURI([]byte("hi"))
	if got != "data:image/png;base64,aGk=" {
		t.Errorf("got %q", got)
	}
}

func TestParseDataURI(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 255}
	mime, data, err := ParseDataURI(DataURI("image/png", payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime: got %q", mime)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload: got %v", data)
	}
}

func TestParseDataURI_Rejects(t *testing.T) {
	for _, uri := range []string{
		"",
		"http://example.com/a.png",
		"data:image/png,plain",
		"data:image/png;base64",
	} {
		if _, _, err := ParseDataURI(uri); !errors.Is(err, ErrNotDataURI) {
			t.Errorf("ParseDataURI(%q): got %v", uri, err)
		}
	}
	if _, _, err := ParseDataURI("data:image/png;base64,@@@"); err == nil {
		t.Error("bad base64 accepted")
	}
}

func TestMIMEForFormat(t *testing.T) {
	if got := MIMEForFormat("png"); got != "image/png" {
		t.Errorf("png: %q", got)
	}
	if got := MIMEForFormat("jpg"); got != "image/jpeg" {
		t.Errorf("jpg: %q", got)
	}
}

func TestDisplayBuffer_AppendOnly(t *testing.T) {
	var b DisplayBuffer
	b.Append(Item{RequestID: 2, Role: RoleOriginal})
	b.Append(Item{RequestID: 1, Role: RoleOriginal}, Item{RequestID: 1, Role: RoleInverted})

	items := b.Items()
	if b.Len() != 3 || len(items) != 3 {
		t.Fatalf("len: got %d", b.Len())
	}
	if items[0].RequestID != 2 || items[2].Role != RoleInverted {
		t.Errorf("order not preserved: %+v", items)
	}

	// Mutating the copy must not touch the buffer.
	items[0].RequestID = 99
	if b.Items()[0].RequestID != 2 {
		t.Error("Items returned shared storage")
	}
}

func TestWritePage(t *testing.T) {
	uri := PNGDataURI([]byte{1, 2, 3})
	var buf bytes.Buffer
	err := WritePage(&buf, Page{
		Items:    []Item{{RequestID: 1, Name: "a.png", Role: RoleOriginal, URI: uri}},
		Texts:    []Text{{RequestID: 1, Name: "a.png", Body: "@@ \n<>\n"}},
		Failures: []Failure{{RequestID: 2, Name: "b.png", Kind: "decode", Message: "bad"}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, `src="`+uri+`"`) {
		t.Errorf("data uri not embedded verbatim:\n%s", html)
	}
	if strings.Contains(html, "ZgotmplZ") {
		t.Error("data uri was sanitized away")
	}
	if !strings.Contains(html, "failed to load image") {
		t.Error("missing failure badge")
	}
	if !strings.Contains(html, "&lt;&gt;") {
		t.Error("ascii body not escaped")
	}
	if !strings.Contains(html, "<title>invascii</title>") {
		t.Error("default title missing")
	}
}
