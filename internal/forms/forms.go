// Package forms decodes and validates the HTML forms submitted to Fyyur
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
)

// US state codes accepted in the state field
const stateCodes = "AL AK AZ AR CA CO CT DC DE FL GA HI ID IL IN IA KS KY LA ME MD MA MI MN MS MO " +
	"MT NE NV NH NJ NM NY NC ND OH OK OR PA RI SC SD TN TX UT VT VA WA WV WI WY"

var validate = validator.New()

func init() {
	validate.RegisterAlias("usstate", "oneof="+stateCodes)
}

// States returns the state codes a venue or artist can be located in
func States() []string {
	return strings.Fields(stateCodes)
}

// Values of a checkbox that count as checked
var checked = map[string]bool{"y": true, "on": true, "true": true, "1": true}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

func checkbox(values url.Values, name string) bool {
	return checked[strings.ToLower(field(values, name))]
}

func uintField(values url.Values, name string) uint {
	num, err := strconv.ParseUint(field(values, name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(num)
}

func genres(values url.Values) []string {
	ret := []string{}
	for _, g := range values["genres"] {
		if g = strings.TrimSpace(g); g != "" {
			ret = append(ret, g)
		}
	}
	return ret
}

// -- Venue ------------------------------------------------------------------------------------------------------------

// VenueForm holds the fields of the venue create and edit forms
type VenueForm struct {
	Name               string   `validate:"required"`
	City               string   `validate:"required"`
	State              string   `validate:"omitempty,usstate"`
	Address            string   `validate:"required"`
	Phone              string   `validate:"required"`
	Genres             []string `validate:"dive,required"`
	ImageLink          string   `validate:"omitempty,url"`
	FacebookLink       string   `validate:"omitempty,url"`
	WebsiteLink        string   `validate:"omitempty,url"`
	SeekingTalent      bool
	SeekingDescription string
}

// DecodeVenue reads a venue form from the submitted values
func DecodeVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              strings.ToUpper(field(values, "state")),
		Address:            field(values, "address"),
		Phone:              field(values, "phone"),
		Genres:             genres(values),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingTalent:      checkbox(values, "seeking_talent"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

// VenueFormFrom fills a form with the values of an existing venue
func VenueFormFrom(v *models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		Genres:             v.Genres,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Validate checks the form contents. The returned error is a validator.ValidationErrors
func (f *VenueForm) Validate() error {
	return validate.Struct(f)
}

// ToModel creates a venue from the form contents
func (f *VenueForm) ToModel(id uint) *models.Venue {
	return &models.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// -- Artist -----------------------------------------------------------------------------------------------------------

// ArtistForm holds the fields of the artist create and edit forms
type ArtistForm struct {
	Name               string   `validate:"required"`
	City               string
	State              string   `validate:"omitempty,usstate"`
	Phone              string   `validate:"required"`
	Genres             []string `validate:"dive,required"`
	ImageLink          string   `validate:"omitempty,url"`
	FacebookLink       string   `validate:"omitempty,url"`
	WebsiteLink        string   `validate:"omitempty,url"`
	SeekingVenue       bool
	SeekingDescription string
}

// DecodeArtist reads an artist form from the submitted values
func DecodeArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               field(values, "name"),
		City:               field(values, "city"),
		State:              strings.ToUpper(field(values, "state")),
		Phone:              field(values, "phone"),
		Genres:             genres(values),
		ImageLink:          field(values, "image_link"),
		FacebookLink:       field(values, "facebook_link"),
		WebsiteLink:        field(values, "website_link"),
		SeekingVenue:       checkbox(values, "seeking_venue"),
		SeekingDescription: field(values, "seeking_description"),
	}
}

// ArtistFormFrom fills a form with the values of an existing artist
func ArtistFormFrom(a *models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Genres:             a.Genres,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.WebsiteLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// Validate checks the form contents. The returned error is a validator.ValidationErrors
func (f *ArtistForm) Validate() error {
	return validate.Struct(f)
}

// ToModel creates an artist from the form contents
func (f *ArtistForm) ToModel(id uint) *models.Artist {
	return &models.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             f.Genres,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// -- Show -------------------------------------------------------------------------------------------------------------

// ShowForm holds the fields of the show creation form
type ShowForm struct {
	ArtistID  uint   `validate:"gt=0"`
	VenueID   uint   `validate:"gt=0"`
	StartTime string `validate:"required,datetime=2006-01-02 15:04:05"`
}

// DecodeShow reads a show form from the submitted values
func DecodeShow(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  uintField(values, "artist_id"),
		VenueID:   uintField(values, "venue_id"),
		StartTime: field(values, "start_time"),
	}
}

// Validate checks the form contents. The returned error is a validator.ValidationErrors
func (f *ShowForm) Validate() error {
	return validate.Struct(f)
}

// ToModel creates a show from the form contents
func (f *ShowForm) ToModel() (*models.Show, error) {
	start, err := repos.ParseTimestamp(f.StartTime)
	if err != nil {
		return nil, errors.Wrap(err, "ToModel: Invalid start time")
	}
	return &models.Show{
		ArtistID:  f.ArtistID,
		VenueID:   f.VenueID,
		StartTime: start,
	}, nil
}

// Genres returns the genres that can be selected in the forms
func Genres() []string {
	return []string{
		"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk", "Hip-Hop", "Heavy Metal",
		"Instrumental", "Jazz", "Musical Theatre", "Pop", "Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Other",
	}
}
