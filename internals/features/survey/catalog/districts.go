package catalog

import "sort"

// DistrictOther is the free-text escape hatch: when selected, the respondent
// supplies their district name manually and the province consistency check is
// skipped.
const DistrictOther = "other"

// DistrictsByProvince carries the well-known districts per province. The
// field teams work from this list; anything not on it goes through
// DistrictOther.
var DistrictsByProvince = map[string][]string{
	"punjab": {
		"Lahore", "Rawalpindi", "Faisalabad", "Multan", "Gujranwala",
		"Sialkot", "Bahawalpur", "Sargodha", "Jhelum", "Attock",
		"Kasur", "Okara", "Sheikhupura", "Sahiwal",
	},
	"sindh": {
		"Karachi Central", "Karachi East", "Karachi South", "Karachi West",
		"Hyderabad", "Sukkur", "Larkana", "Mirpur Khas", "Thatta", "Badin",
	},
	"kpk": {
		"Peshawar", "Mardan", "Abbottabad", "Swat", "Kohat", "Bannu",
		"Dera Ismail Khan", "Mansehra", "Nowshera", "Charsadda",
	},
	"balochistan": {
		"Quetta", "Gwadar", "Khuzdar", "Loralai", "Sibi", "Zhob",
		"Chagai", "Lasbela",
	},
	"ict": {
		"Islamabad",
	},
}

// AllDistricts returns the full sorted district list for form rendering.
func AllDistricts() []string {
	var out []string
	for _, ds := range DistrictsByProvince {
		out = append(out, ds...)
	}
	sort.Strings(out)
	return out
}

// DistrictInProvince reports whether a district belongs to the given
// province's list.
func DistrictInProvince(province, district string) bool {
	for _, d := range DistrictsByProvince[province] {
		if d == district {
			return true
		}
	}
	return false
}
