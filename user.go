package odnoklassniki

import (
	"context"
	"fmt"
)

// Gender represents the gender of a user.
type Gender int

const (
	// GenderUnknown indicates the gender is not known or not specified.
	GenderUnknown Gender = 0
	// GenderMale indicates male.
	GenderMale Gender = 1
	// GenderFemale indicates female.
	GenderFemale Gender = 2
)

// String returns the string representation of the Gender.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

func parseGender(s string) Gender {
	switch s {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Location is the user's declared place of residence.
type Location struct {
	City        string
	Country     string
	CountryCode string
}

// UserInfo is the profile returned by users.getCurrentUser.
type UserInfo struct {
	// UID is the user's identifier within the application.
	UID       string
	Name      string
	FirstName string
	LastName  string
	Gender    Gender
	// Birthday is reported as YYYY-MM-DD or MM-DD, depending on the user's privacy settings.
	Birthday string
	Age      int
	Locale   string
	// Pic1, Pic2 and Pic3 are avatar URLs at 50x50, 128x128 and 190x190.
	Pic1     string
	Pic2     string
	Pic3     string
	Location Location
	// Raw contains the decoded response.
	Raw Response
}

// String returns a short description of the user.
func (u *UserInfo) String() string {
	return fmt.Sprintf("UserInfo{UID:%q, Name:%q, Gender:%s, Locale:%q}", u.UID, u.Name, u.Gender, u.Locale)
}

// GetUserInfo calls users.getCurrentUser and decodes the result.
// A response without uid is an ErrKindProtocol error.
func (c *Client) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	resp, err := c.GetUser(ctx)
	if err != nil {
		return nil, err
	}

	info := &UserInfo{
		UID:       resp.String("uid"),
		Name:      resp.String("name"),
		FirstName: resp.String("first_name"),
		LastName:  resp.String("last_name"),
		Gender:    parseGender(resp.String("gender")),
		Birthday:  resp.String("birthday"),
		Age:       resp.Int("age"),
		Locale:    resp.String("locale"),
		Pic1:      resp.String("pic_1"),
		Pic2:      resp.String("pic_2"),
		Pic3:      resp.String("pic_3"),
		Raw:       resp,
	}
	if loc, ok := resp["location"].(map[string]any); ok {
		l := Response(loc)
		info.Location = Location{
			City:        l.String("city"),
			Country:     l.String("country"),
			CountryCode: l.String("countryCode"),
		}
	}
	if info.UID == "" {
		return nil, newAPIError(ErrKindProtocol, "missing uid in users.getCurrentUser response", 0, nil)
	}

	c.logger.Debug("odnoklassniki user retrieved", "uid", info.UID, "name", info.Name)

	return info, nil
}
