package render

// Button 内联按钮；CallbackData 与 URL 二选一
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// Keyboard 按行排列的内联键盘
type Keyboard [][]Button

func (k Keyboard) Equal(o Keyboard) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if len(k[i]) != len(o[i]) {
			return false
		}
		for j := range k[i] {
			if k[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Card 频道消息的可见状态：正文（HTML）+ 按钮
type Card struct {
	Text     string   `json:"text"`
	Keyboard Keyboard `json:"keyboard"`
	// Captioned 决定用 editMessageCaption 还是 editMessageText，不参与比较
	Captioned bool `json:"captioned"`
}

// Equal 只比较外部可见的正文与按钮
func (c Card) Equal(o Card) bool {
	return c.Text == o.Text && c.Keyboard.Equal(o.Keyboard)
}
