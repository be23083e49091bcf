package formdata_test

import (
	"time"

	"github.com/tomasbasham/formdata"
)

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type ComplexPerson struct {
	ID        int      `form:"id"`
	Name      string   `form:"name"`
	Age       int      `form:"age,omitempty"`
	Pronouns  []string `form:"pronouns,omitempty"`
	CreatedAt MyDate   `form:"created_at"`
	Private   string   `form:"-"`
	Optional  *string  `form:"optional,omitempty"`
}

type IgnoredFieldsForm struct {
	Public  string `form:"public"`
	Private string `form:"-"`
	Ignored string `form:",ignore"`
	NoTag   string
	Empty   string `form:""`
	Omitted string `form:",omitempty"`
	Complex MyDate `form:"complex,omitempty"`
}

type User struct {
	Name    string  `form:"name"`
	Age     int     `form:"age,omitempty"`
	Address Address `form:"address"`
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
	State  string `form:"state"`
	Zip    string `form:"zip"`
}

type Upload struct {
	Title       string            `form:"title"`
	Attachments []*formdata.File  `form:"attachments,noindex"`
	Labels      []string          `form:"labels"`
	Meta        map[string]string `form:"meta,omitempty"`
}

type MyDate time.Time

func (d MyDate) MarshalForm() (string, error) {
	return time.Time(d).Format("2006.01.02"), nil
}

func text(name, value string) formdata.Field {
	return formdata.Field{Name: name, Value: value}
}

func file(name string, f *formdata.File) formdata.Field {
	return formdata.Field{Name: name, File: f}
}

type Annotated struct {
	Note *formdata.String  `form:"note"`
	Meta *formdata.Mapping `form:"meta"`
	Skip *formdata.Int     `form:"skip"`
}

type Gallery struct {
	Title string `form:"title"`
	Album Album  `form:"album"`
}

type Album struct {
	Photos []*formdata.File `form:"photos,noindex"`
	Tags   []string         `form:"tags"`
}

func ptr[T any](v T) *T {
	return &v
}
