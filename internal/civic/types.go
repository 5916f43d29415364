package civic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// 文档注释：Civic Information representatives 接口的原始响应
// 约束：仅建模分类所需字段与少量展示字段；保持上游原样，不做归一化
type Payload struct {
	Kind            string           `json:"kind,omitempty"`
	NormalizedInput *NormalizedInput `json:"normalizedInput"`
	Divisions       Divisions        `json:"divisions"`
	Offices         []Office         `json:"offices"`
	Officials       []Official       `json:"officials"`
	Error           *APIError        `json:"error,omitempty"`
}

type NormalizedInput struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type Office struct {
	Name            string   `json:"name"`
	DivisionID      string   `json:"divisionId"`
	Levels          []string `json:"levels,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	OfficialIndices []int    `json:"officialIndices"`
}

type Official struct {
	Name     string    `json:"name"`
	Party    string    `json:"party,omitempty"`
	Phones   []string  `json:"phones,omitempty"`
	URLs     []string  `json:"urls,omitempty"`
	PhotoURL string    `json:"photoUrl,omitempty"`
	Channels []Channel `json:"channels,omitempty"`
}

type Channel struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// APIError：上游返回的错误信封
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("civic api error %d: %s", e.Code, e.Message)
}

// Division：一个行政区划，ID 形如 ocd-division/country:us/state:tx/county:travis
type Division struct {
	ID   string
	Name string
}

// Divisions：按上游 JSON 对象的键顺序保存的区划列表
// 约束：分类时“后出现者覆盖”依赖该顺序，因此不能解码为 map
type Divisions []Division

func (d *Divisions) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("divisions: expected object")
	}
	out := Divisions{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return errors.New("divisions: expected key")
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("divisions[%s]: %w", key, err)
		}
		out = append(out, Division{ID: key, Name: body.Name})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

func (d Divisions) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, div := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(div.ID)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(struct {
			Name string `json:"name"`
		}{div.Name})
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
