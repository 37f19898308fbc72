package avatar

import "encoding/json"

// Unknown 是响应缺少表情或动作字段时使用的占位值。
const Unknown = "unknown"

// MessageUnit 是后端返回的一段可播报文本及其表情、动作标签。
// 解码时记录表情、动作字段是否出现，空字符串与缺失是两回事。
type MessageUnit struct {
	Text             string          `json:"text"`
	FacialExpression string          `json:"facialExpression,omitempty"`
	Animation        string          `json:"animation,omitempty"`
	Audio            json.RawMessage `json:"audio,omitempty"`   // base64 音频，不做校验
	Lipsync          json.RawMessage `json:"lipsync,omitempty"` // 口型数据，不做校验

	expressionAbsent bool
	animationAbsent  bool
}

// UnmarshalJSON decodes a message and remembers which tags were missing or null.
func (m *MessageUnit) UnmarshalJSON(data []byte) error {
	type wire MessageUnit
	var aux struct {
		wire
		FacialExpression *string `json:"facialExpression"`
		Animation        *string `json:"animation"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*m = MessageUnit(aux.wire)
	m.FacialExpression, m.expressionAbsent = deref(aux.FacialExpression)
	m.Animation, m.animationAbsent = deref(aux.Animation)
	return nil
}

// ExpressionOr returns the facial expression, or fallback when the field was absent.
// A present but empty value is returned as is.
func (m MessageUnit) ExpressionOr(fallback string) string {
	if m.expressionAbsent {
		return fallback
	}
	return m.FacialExpression
}

// AnimationOr returns the animation tag, or fallback when the field was absent.
func (m MessageUnit) AnimationOr(fallback string) string {
	if m.animationAbsent {
		return fallback
	}
	return m.Animation
}

// ExpressionOrUnknown is ExpressionOr(Unknown).
func (m MessageUnit) ExpressionOrUnknown() string {
	return m.ExpressionOr(Unknown)
}

// AnimationOrUnknown is AnimationOr(Unknown).
func (m MessageUnit) AnimationOrUnknown() string {
	return m.AnimationOr(Unknown)
}

// Response 对应 POST /tts 的响应体。messages 缺失时解码为空切片语义。
type Response struct {
	Messages []MessageUnit   `json:"messages"`
	Images   json.RawMessage `json:"images,omitempty"`
}

func deref(value *string) (string, bool) {
	if value == nil {
		return "", true
	}
	return *value, false
}
