package slack

// Message описывает тело запроса к Slack incoming webhook (Block Kit).
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block представляет один блок сообщения. Заполняются только поля,
// относящиеся к конкретному типу блока.
type Block struct {
	Type     string    `json:"type"`
	Text     *Text     `json:"text,omitempty"`
	Fields   []Text    `json:"fields,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// Text — текстовый объект Block Kit (plain_text или mrkdwn).
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Element — интерактивный элемент блока actions (кнопка).
type Element struct {
	Type  string `json:"type"`
	Text  *Text  `json:"text,omitempty"`
	URL   string `json:"url,omitempty"`
	Style string `json:"style,omitempty"`
}
