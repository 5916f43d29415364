package reps

import (
	"regexp"
	"strings"
)

// Category：官员归属的辖区分组
type Category int

const (
	None Category = iota
	Federal
	County
	City
	State
)

func (c Category) String() string {
	switch c {
	case Federal:
		return "federal"
	case County:
		return "county"
	case City:
		return "city"
	case State:
		return "state"
	default:
		return "none"
	}
}

// 各分组的排除标题（子串匹配）；联邦不做排除
var exclusions = map[Category][]string{
	County: {"Clerk", "Tax", "Treasurer", "District Clerk", "Highway", "Town"},
	City:   {"Advocate"},
	State:  {"Accounts", "Railroad", "Land", "Agriculture", "Court", "City", "Advocate", "Comptroller", "Lieutenant"},
}

func isFederal(divisionID, title string) bool {
	return strings.HasSuffix(divisionID, "country:us") ||
		strings.Contains(title, "U.S. Senator") ||
		strings.Contains(title, "U.S. Representative")
}

func isCounty(divisionID string) bool { return strings.Contains(divisionID, "county") }

func isCity(divisionID string) bool { return strings.Contains(divisionID, "place:") }

func isState(divisionID, stateAbbrev string) bool {
	return strings.Contains(divisionID, "state:"+strings.ToLower(stateAbbrev))
}

// Classify：按 联邦 > 县 > 市 > 州 的顺序判定，首个命中即返回
func Classify(divisionID, title, stateAbbrev string) Category {
	switch {
	case isFederal(divisionID, title):
		return Federal
	case isCounty(divisionID):
		return County
	case isCity(divisionID):
		return City
	case isState(divisionID, stateAbbrev):
		return State
	default:
		return None
	}
}

// Excluded：标题是否落在该分组的排除列表中
func Excluded(c Category, title string) bool {
	for _, f := range exclusions[c] {
		if strings.Contains(title, f) {
			return true
		}
	}
	return false
}

// 区划键的分类：只看键尾部
var (
	reDivCounty   = regexp.MustCompile(`county:[a-z]+$`)
	reDivDistrict = regexp.MustCompile(`cd:.{1,2}$`)
	reDivState    = regexp.MustCompile(`state:..$`)
)

type divisionKind int

const (
	divOther divisionKind = iota
	divCounty
	divDistrict
	divState
)

func classifyDivision(id string) divisionKind {
	switch {
	case reDivCounty.MatchString(id):
		return divCounty
	case reDivDistrict.MatchString(id):
		return divDistrict
	case reDivState.MatchString(id):
		return divState
	default:
		return divOther
	}
}
