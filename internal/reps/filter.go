// 包 reps：把 Civic API 原始响应整理为按辖区分组的官员列表
package reps

import (
	"fmt"

	"civic-api/internal/civic"
)

// Filter：纯函数，无 I/O、无共享状态，可并发调用
// 约束：缺失字段或越界索引返回 *PayloadError，不 panic
func Filter(p *civic.Payload) (*Result, error) {
	if p == nil {
		return nil, &PayloadError{Field: "payload"}
	}
	if p.Error != nil {
		return nil, &PayloadError{Field: "error", Err: p.Error}
	}
	in := p.NormalizedInput
	if in == nil {
		return nil, &PayloadError{Field: "normalizedInput"}
	}

	res := &Result{Reps: newBuckets()}
	res.Address = strPtr(fmt.Sprintf("%s, %s, %s %s", in.Line1, in.City, in.State, in.Zip))
	res.City = strPtr(in.City)

	for _, d := range p.Divisions {
		switch classifyDivision(d.ID) {
		case divCounty:
			res.County = strPtr(d.Name)
		case divDistrict:
			res.District = strPtr(d.Name)
		case divState:
			res.State = strPtr(d.Name)
		}
	}

	for i, o := range p.Offices {
		if err := addOffice(&res.Reps, o, p.Officials, in.State); err != nil {
			return nil, &PayloadError{Field: fmt.Sprintf("offices[%d]", i), Err: err}
		}
	}
	return res, nil
}

// addOffice：按顺序处理一个职位下的官员
// 约束：首个被排除的官员会结束该职位的处理，后续官员一并跳过
func addOffice(b *Buckets, o civic.Office, officials []civic.Official, stateAbbrev string) error {
	for _, idx := range o.OfficialIndices {
		if idx < 0 || idx >= len(officials) {
			return fmt.Errorf("official index %d out of range", idx)
		}
		c := Classify(o.DivisionID, o.Name, stateAbbrev)
		if c == None {
			continue
		}
		if Excluded(c, o.Name) {
			return nil
		}
		b.add(c, Rep{Title: o.Name, Name: officials[idx].Name})
	}
	return nil
}

func strPtr(s string) *string { return &s }
