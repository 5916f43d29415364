package reps

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Rep：一条 {职位: 姓名} 记录，序列化为单键对象
type Rep struct {
	Title string
	Name  string
}

func (r Rep) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{r.Title: r.Name})
}

func (r *Rep) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("rep: expected single entry, got %d", len(m))
	}
	for k, v := range m {
		r.Title, r.Name = k, v
	}
	return nil
}

// Buckets：四个分组始终存在，空分组序列化为 []
type Buckets struct {
	Federal []Rep `json:"federal"`
	State   []Rep `json:"state"`
	City    []Rep `json:"city"`
	County  []Rep `json:"county"`
}

func newBuckets() Buckets {
	return Buckets{Federal: []Rep{}, State: []Rep{}, City: []Rep{}, County: []Rep{}}
}

func (b *Buckets) add(c Category, r Rep) {
	switch c {
	case Federal:
		b.Federal = append(b.Federal, r)
	case County:
		b.County = append(b.County, r)
	case City:
		b.City = append(b.City, r)
	case State:
		b.State = append(b.State, r)
	}
}

// Count：各分组条目数，键为分组名
func (b Buckets) Count() map[string]int {
	return map[string]int{
		Federal.String(): len(b.Federal),
		State.String():   len(b.State),
		City.String():    len(b.City),
		County.String():  len(b.County),
	}
}

// Result：对外返回的归一化结果
// 约束：五个元数据字段始终输出，未命中时为 null
type Result struct {
	Address  *string `json:"address"`
	State    *string `json:"state"`
	City     *string `json:"city"`
	County   *string `json:"county"`
	District *string `json:"district"`
	Reps     Buckets `json:"reps"`
}

var ErrInvalidPayload = errors.New("invalid upstream payload")

// PayloadError：上游响应缺少分类所需字段
type PayloadError struct {
	Field string
	Err   error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidPayload, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidPayload, e.Field)
}

func (e *PayloadError) Is(target error) bool { return target == ErrInvalidPayload }

func (e *PayloadError) Unwrap() error { return e.Err }
