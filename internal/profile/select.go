package profile

// MaxSelected is the number of fields Select can return.
const MaxSelected = 5

// selectedKeys is the fixed display order of selected fields.
var selectedKeys = [MaxSelected]string{
	KeyDisplayName,
	KeyJobTitle,
	KeyMail,
	KeyMobilePhone,
	KeyOfficeLocation,
}

// Select returns the present display fields of r in fixed order:
// display name, job title, mail, mobile phone, office location.
// Absent fields are skipped, not emitted as blanks.
func Select(r Record) []string {
	out := make([]string, 0, MaxSelected)
	for _, key := range selectedKeys {
		if v, ok := r.String(key); ok {
			out = append(out, v)
		}
	}
	return out
}
