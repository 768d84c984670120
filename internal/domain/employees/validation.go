package employees

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"empleados/internal/domain/catalogs"
	"empleados/internal/platform/validate"
)

var maxSalary = decimal.New(1, 12)

// ValidateCreate reads date-only values as midnight in loc.
func ValidateCreate(ctx context.Context, reader catalogs.Reader, loc *time.Location, in CreateInput) (Fields, error) {
	in = trimCreate(in)
	var verr validate.Error
	validate.Struct(&verr, in)

	var out Fields
	if in.Salary != "" {
		if salary, ok := parseSalary(&verr, in.Salary); ok {
			out.Salary = salary
		}
	}
	if in.TerminationDate != "" {
		parsed, err := ParseDate(in.TerminationDate, loc)
		if err != nil {
			verr.Add("terminationDate", "must be a date in YYYY-MM-DD or RFC3339 format")
		} else {
			out.TerminationDate = &parsed
		}
	}
	if err := verr.Err(); err != nil {
		return Fields{}, err
	}

	if err := checkCatalogRefs(ctx, reader, &verr, map[catalogs.Kind]ref{
		catalogs.KindARL:          {"arlId", in.ARLID},
		catalogs.KindEPS:          {"epsId", in.EPSID},
		catalogs.KindPensionFunds: {"pensionFundId", in.PensionFundID},
	}); err != nil {
		return Fields{}, err
	}
	if err := verr.Err(); err != nil {
		return Fields{}, err
	}

	out.FirstName = in.FirstName
	out.LastName = in.LastName
	out.NationalID = in.NationalID
	out.BloodType = BloodType(in.BloodType)
	out.Phone = in.Phone
	out.ARLID = in.ARLID
	out.EPSID = in.EPSID
	out.PensionFundID = in.PensionFundID
	return out, nil
}

func ValidateUpdate(ctx context.Context, reader catalogs.Reader, loc *time.Location, in UpdateInput) (Changes, error) {
	in = trimUpdate(in)
	var verr validate.Error
	validate.Struct(&verr, in)

	var out Changes
	if in.Salary != nil {
		if salary, ok := parseSalary(&verr, *in.Salary); ok {
			out.Salary = &salary
		}
	}
	if in.TerminationDate != nil {
		if *in.TerminationDate == "" {
			out.ClearTermination = true
		} else if parsed, err := ParseDate(*in.TerminationDate, loc); err != nil {
			verr.Add("terminationDate", "must be a date in YYYY-MM-DD or RFC3339 format")
		} else {
			out.TerminationDate = &parsed
		}
	}
	if err := verr.Err(); err != nil {
		return Changes{}, err
	}

	refs := map[catalogs.Kind]ref{}
	if in.ARLID != nil {
		refs[catalogs.KindARL] = ref{"arlId", *in.ARLID}
	}
	if in.EPSID != nil {
		refs[catalogs.KindEPS] = ref{"epsId", *in.EPSID}
	}
	if in.PensionFundID != nil {
		refs[catalogs.KindPensionFunds] = ref{"pensionFundId", *in.PensionFundID}
	}
	if err := checkCatalogRefs(ctx, reader, &verr, refs); err != nil {
		return Changes{}, err
	}
	if err := verr.Err(); err != nil {
		return Changes{}, err
	}

	out.FirstName = in.FirstName
	out.LastName = in.LastName
	out.NationalID = in.NationalID
	if in.BloodType != nil {
		bt := BloodType(*in.BloodType)
		out.BloodType = &bt
	}
	out.Phone = in.Phone
	out.ARLID = in.ARLID
	out.EPSID = in.EPSID
	out.PensionFundID = in.PensionFundID
	return out, nil
}

// ParseDate accepts RFC3339 or YYYY-MM-DD. A bare date is midnight in loc
// (UTC when loc is nil) so it keeps its calendar day in that zone.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}

type ref struct {
	field string
	id    string
}

func checkCatalogRefs(ctx context.Context, reader catalogs.Reader, verr *validate.Error, refs map[catalogs.Kind]ref) error {
	for _, kind := range catalogs.Kinds {
		r, ok := refs[kind]
		if !ok {
			continue
		}
		exists, err := reader.Exists(ctx, kind, r.id)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add(r.field, "does not exist")
		}
	}
	return nil
}

func parseSalary(verr *validate.Error, raw string) (decimal.Decimal, bool) {
	salary, err := decimal.NewFromString(raw)
	switch {
	case err != nil:
		verr.Add("salary", "must be a decimal number")
	case !salary.IsPositive():
		verr.Add("salary", "must be greater than zero")
	case !salary.Equal(salary.Round(2)):
		verr.Add("salary", "must have at most 2 decimal places")
	case salary.GreaterThanOrEqual(maxSalary):
		verr.Add("salary", "is too large")
	default:
		return salary, true
	}
	return decimal.Zero, false
}

func trimCreate(in CreateInput) CreateInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.BloodType = strings.TrimSpace(in.BloodType)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Salary = strings.TrimSpace(in.Salary)
	in.ARLID = strings.TrimSpace(in.ARLID)
	in.EPSID = strings.TrimSpace(in.EPSID)
	in.PensionFundID = strings.TrimSpace(in.PensionFundID)
	in.TerminationDate = strings.TrimSpace(in.TerminationDate)
	return in
}

func trimUpdate(in UpdateInput) UpdateInput {
	for _, p := range []**string{
		&in.FirstName, &in.LastName, &in.NationalID, &in.BloodType, &in.Phone,
		&in.Salary, &in.ARLID, &in.EPSID, &in.PensionFundID, &in.TerminationDate,
	} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	return in
}
