package odnoklassniki

import (
	"net/url"
	"testing"
)

func TestMD5Hex(t *testing.T) {
	if got := md5Hex("TOKSEC"); got != "61ed20797dfdc2aff193fa0ba5a1bfee" {
		t.Errorf("md5Hex(TOKSEC) = %q; want %q", got, "61ed20797dfdc2aff193fa0ba5a1bfee")
	}
	if got := md5Hex(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("md5Hex(\"\") = %q; want %q", got, "d41d8cd98f00b204e9800998ecf8427e")
	}
}

func TestSignature_KnownDigest(t *testing.T) {
	got := Signature("APP", "TOK", "SEC", "users.getCurrentUser", nil)
	want := "b518f48202b4c006084fbc66a464d777"
	if got != want {
		t.Errorf("Signature() = %q; want %q", got, want)
	}
}

func TestSignature_MatchesTwoStageFormula(t *testing.T) {
	inner := md5Hex("TOK" + "SEC")
	want := md5Hex("application_key=" + "APP" + "method=" + "users.getCurrentUser" + inner)
	if got := Signature("APP", "TOK", "SEC", "users.getCurrentUser", nil); got != want {
		t.Errorf("Signature() = %q; want %q", got, want)
	}
}

func TestSignature_IgnoresAccessTokenAndSig(t *testing.T) {
	base := Signature("APP", "TOK", "SEC", "users.getCurrentUser", nil)
	withAuth := Signature("APP", "TOK", "SEC", "users.getCurrentUser", url.Values{
		"access_token": {"TOK"},
		"sig":          {"stale"},
	})
	if base != withAuth {
		t.Errorf("Signature() with access_token/sig = %q; want %q", withAuth, base)
	}
}

func TestSignature_ExtraParamsSorted(t *testing.T) {
	got := Signature("APP", "TOK", "SEC", "users.getInfo", url.Values{
		"uids":   {"1"},
		"fields": {"uid,name"},
	})
	// application_key=APP fields=uid,name method=users.getInfo uids=1, then md5(TOKSEC).
	want := "28e7d5f3957b5b3acc685ab814825be8"
	if got != want {
		t.Errorf("Signature() = %q; want %q", got, want)
	}
}

func TestSignature_DependsOnToken(t *testing.T) {
	a := Signature("APP", "TOK", "SEC", "users.getCurrentUser", nil)
	b := Signature("APP", "NEWTOK", "SEC", "users.getCurrentUser", nil)
	if a == b {
		t.Error("Signature() should change when the access token changes")
	}
	if b != "462208b0352f7e3d0ee364e1cbfea6e3" {
		t.Errorf("Signature() = %q; want %q", b, "462208b0352f7e3d0ee364e1cbfea6e3")
	}
}

func TestBuildSignContent(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{"empty", map[string]string{}, ""},
		{"sorted", map[string]string{"method": "m", "application_key": "k"}, "application_key=kmethod=m"},
		{"empty value kept", map[string]string{"a": "", "b": "2"}, "a=b=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSignContent(tt.params); got != tt.want {
				t.Errorf("buildSignContent() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestSignature_MultiValuedJoined(t *testing.T) {
	got := Signature("APP", "TOK", "SEC", "users.getInfo", url.Values{"uids": {"1", "2"}})
	want := Signature("APP", "TOK", "SEC", "users.getInfo", url.Values{"uids": {"1,2"}})
	if got != want {
		t.Errorf("Signature() = %q; want %q", got, want)
	}
	if want != "0faf70300dbe1271ea4cf2eb80d5b567" {
		t.Errorf("Signature() = %q; want %q", want, "0faf70300dbe1271ea4cf2eb80d5b567")
	}
}
