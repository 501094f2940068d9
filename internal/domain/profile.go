package domain

import (
	"fmt"
	"slices"
	"strings"
)

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

func (b BloodGroup) Valid() bool { return slices.Contains(BloodGroups, b) }

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

// The device owner's own profile. One per device; also published into the
// shared donor registry keyed by phone.
type UserProfile struct {
	Name            string     `json:"name"`
	Age             string     `json:"age"`
	BloodGroup      BloodGroup `json:"bloodGroup"`
	Sex             Sex        `json:"sex"`
	Phone           string     `json:"phone"`
	WillingToDonate bool       `json:"willingToDonate"`
}

// Validate mirrors the profile form: every field is mandatory.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Age) == "" || strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("%w: name, age and phone are required", ErrInvalidProfile)
	}
	if !p.BloodGroup.Valid() {
		return fmt.Errorf("%w: unknown blood group %q", ErrInvalidProfile, p.BloodGroup)
	}
	if !p.Sex.Valid() {
		return fmt.Errorf("%w: sex must be M or F, got %q", ErrInvalidProfile, p.Sex)
	}
	return nil
}

// UpsertProfile drops every entry sharing p's phone and appends p at the end.
// Registry order is therefore not stable across repeated saves from one user.
func UpsertProfile(registry []UserProfile, p UserProfile) []UserProfile {
	out := make([]UserProfile, 0, len(registry)+1)
	for _, existing := range registry {
		if existing.Phone != p.Phone {
			out = append(out, existing)
		}
	}
	return append(out, p)
}

// FilterDonors selects willing donors, optionally restricted to one blood group.
// An empty filter matches every group.
func FilterDonors(profiles []UserProfile, filter BloodGroup) []UserProfile {
	out := make([]UserProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.WillingToDonate {
			continue
		}
		if filter != "" && p.BloodGroup != filter {
			continue
		}
		out = append(out, p)
	}
	return out
}
