package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

// ValidateSeed checks a seed before conversion and returns every problem
// found, each prefixed with its location in the file.
func ValidateSeed(seed *Seed) []error {
	var errs []error

	errs = append(errs, checkStruct("project", &seed.Project)...)
	if p := seed.Project; p.Wrap != "" && p.ShootStart != "" && p.Wrap < p.ShootStart {
		errs = append(errs, fmt.Errorf("project.wrap: %s is before shoot_start %s", p.Wrap, p.ShootStart))
	}

	areaRefs := make(map[string]bool)
	for i, a := range seed.Areas {
		prefix := fmt.Sprintf("areas[%d]", i)
		errs = append(errs, checkStruct(prefix, &a)...)
		key := areaKey(a)
		if key == "" {
			continue
		}
		if areaRefs[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate area %q", prefix, key))
		}
		areaRefs[key] = true
	}

	locNames := make(map[string]bool)
	for i, l := range seed.Locations {
		prefix := fmt.Sprintf("locations[%d]", i)
		errs = append(errs, checkStruct(prefix, &l)...)
		if l.Area != "" && !areaRefs[l.Area] {
			errs = append(errs, fmt.Errorf("%s.area: unknown area %q", prefix, l.Area))
		}
		if (l.Latitude == nil) != (l.Longitude == nil) {
			errs = append(errs, fmt.Errorf("%s: latitude and longitude must be set together", prefix))
		}
		if l.Name != "" && locNames[l.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate location %q", prefix, l.Name))
		}
		locNames[l.Name] = true
	}

	codes := make(map[string]bool)
	for i, d := range seed.Departments {
		prefix := fmt.Sprintf("departments[%d]", i)
		errs = append(errs, checkStruct(prefix, &d)...)
		code := strings.ToUpper(strings.TrimSpace(d.Code))
		if code != "" && codes[code] {
			errs = append(errs, fmt.Errorf("%s: duplicate department code %q", prefix, code))
		}
		codes[code] = true
	}

	for i, h := range seed.Holidays {
		errs = append(errs, checkStruct(fmt.Sprintf("holidays[%d]", i), &h)...)
	}
	for i, h := range seed.Hiatus {
		prefix := fmt.Sprintf("hiatus[%d]", i)
		errs = append(errs, checkStruct(prefix, &h)...)
		if h.Start != "" && h.End != "" && h.End < h.Start {
			errs = append(errs, fmt.Errorf("%s: end %s is before start %s", prefix, h.End, h.Start))
		}
	}
	for i, w := range seed.WorkingWeekends {
		prefix := fmt.Sprintf("working_weekends[%d]", i)
		errs = append(errs, checkStruct(prefix, &w)...)
		if d, err := time.Parse("2006-01-02", w.Date); err == nil {
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				errs = append(errs, fmt.Errorf("%s.date: %s falls on a %s", prefix, w.Date, wd))
			}
		}
	}
	for i, s := range seed.SpecialDates {
		errs = append(errs, checkStruct(fmt.Sprintf("special_dates[%d]", i), &s)...)
	}

	return errs
}

func checkStruct(prefix string, s any) []error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("%s: %w", prefix, err)}
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := prefix + "." + fe.Field()
		switch fe.Tag() {
		case "required":
			errs = append(errs, fmt.Errorf("%s is required", field))
		case "datetime":
			errs = append(errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, fe.Value()))
		case "oneof":
			errs = append(errs, fmt.Errorf("%s: %q is not one of %s", field, fe.Value(), fe.Param()))
		default:
			errs = append(errs, fmt.Errorf("%s: invalid value %v (%s)", field, fe.Value(), fe.Tag()))
		}
	}
	return errs
}

func areaKey(a AreaSeed) string {
	if a.Ref != "" {
		return a.Ref
	}
	return a.Name
}
