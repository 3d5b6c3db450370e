package odnoklassniki

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenderString(t *testing.T) {
	tests := []struct {
		name   string
		gender Gender
		want   string
	}{
		{"unknown", GenderUnknown, "unknown"},
		{"male", GenderMale, "male"},
		{"female", GenderFemale, "female"},
		{"out of range", Gender(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gender.String(); got != tt.want {
				t.Errorf("Gender(%d).String() = %q; want %q", tt.gender, got, tt.want)
			}
		})
	}
}

func TestParseGender(t *testing.T) {
	if parseGender("male") != GenderMale {
		t.Error("parseGender(male) != GenderMale")
	}
	if parseGender("female") != GenderFemale {
		t.Error("parseGender(female) != GenderFemale")
	}
	if parseGender("") != GenderUnknown {
		t.Error("parseGender(\"\") != GenderUnknown")
	}
}

func TestGetUserInfo_Success(t *testing.T) {
	srv := respondWith(t, `{
		"uid": "574214353354",
		"name": "Ivan Petrov",
		"first_name": "Ivan",
		"last_name": "Petrov",
		"gender": "male",
		"birthday": "1990-04-12",
		"age": 36,
		"locale": "ru",
		"pic_1": "https://i.mycdn.me/50.jpg",
		"pic_2": "https://i.mycdn.me/128.jpg",
		"pic_3": "https://i.mycdn.me/190.jpg",
		"location": {"city": "Moscow", "country": "RUSSIAN_FEDERATION", "countryCode": "RU"}
	}`)
	c := newTestClient(srv, WithAccessToken("TOK"))

	info, err := c.GetUserInfo(context.Background())
	if err != nil {
		t.Fatalf("GetUserInfo returned error: %v", err)
	}
	if info.UID != "574214353354" {
		t.Errorf("UID = %q; want %q", info.UID, "574214353354")
	}
	if info.FirstName != "Ivan" || info.LastName != "Petrov" || info.Name != "Ivan Petrov" {
		t.Errorf("names = %q %q %q", info.FirstName, info.LastName, info.Name)
	}
	if info.Gender != GenderMale {
		t.Errorf("Gender = %v; want %v", info.Gender, GenderMale)
	}
	if info.Age != 36 {
		t.Errorf("Age = %d; want 36", info.Age)
	}
	if info.Pic3 != "https://i.mycdn.me/190.jpg" {
		t.Errorf("Pic3 = %q", info.Pic3)
	}
	if info.Location.City != "Moscow" || info.Location.CountryCode != "RU" {
		t.Errorf("Location = %+v", info.Location)
	}
	if info.Raw["locale"] != "ru" {
		t.Errorf("Raw[locale] = %v; want ru", info.Raw["locale"])
	}
	if !strings.Contains(info.String(), `UID:"574214353354"`) {
		t.Errorf("String() = %q", info.String())
	}
}

func TestGetUserInfo_NumericUID(t *testing.T) {
	srv := respondWith(t, `{"uid": 574214353354, "name": "Ivan"}`)
	c := newTestClient(srv, WithAccessToken("TOK"))

	info, err := c.GetUserInfo(context.Background())
	if err != nil {
		t.Fatalf("GetUserInfo returned error: %v", err)
	}
	if info.UID != "574214353354" {
		t.Errorf("UID = %q; want %q", info.UID, "574214353354")
	}
}

func TestGetUserInfo_MissingUID(t *testing.T) {
	srv := respondWith(t, `{"name": "Ivan"}`)
	c := newTestClient(srv, WithAccessToken("TOK"))

	_, err := c.GetUserInfo(context.Background())
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("error = %v; want ErrProtocol", err)
	}
}

func TestGetUserInfo_APIError(t *testing.T) {
	srv := respondWith(t, `{"error_code": 102, "error_msg": "PARAM_SESSION_EXPIRED"}`)
	c := newTestClient(srv, WithAccessToken("TOK"))

	_, err := c.GetUserInfo(context.Background())
	if !errors.Is(err, ErrAPI) {
		t.Errorf("error = %v; want ErrAPI", err)
	}
}
