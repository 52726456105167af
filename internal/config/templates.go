package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TemplateSpan is one run of text inside a template paragraph, optionally
// carrying a hyperlink.
type TemplateSpan struct {
	Text string `yaml:"text"`
	Link string `yaml:"link,omitempty"`
}

// TemplateParagraph is one paragraph of newsletter boilerplate.
type TemplateParagraph struct {
	Spans []TemplateSpan `yaml:"spans"`
}

// Templates holds all newsletter boilerplate. The texts are data, not
// logic: they can be replaced wholesale by pointing
// NEWSLETTER_TEMPLATE_FILE at a YAML document with the same shape.
type Templates struct {
	// Preface paragraphs inserted right after the table of contents.
	Preface []TemplateParagraph `yaml:"preface"`
	// PrefacePeriod is a format string with two %s verbs receiving the
	// start and end day of the covered period; it becomes the final
	// preface paragraph.
	PrefacePeriod string `yaml:"preface_period"`

	// Section titles, each rendered as a divider plus a heading wrapped in
	// 「」 brackets.
	SharedSection        string `yaml:"shared_section"`
	OneMoreThingSection  string `yaml:"one_more_thing_section"`
	FriendlyLinksSection string `yaml:"friendly_links_section"`

	// FriendlyLinks paragraphs under the friendly-links section.
	FriendlyLinks []TemplateParagraph `yaml:"friendly_links"`
	// Copyright paragraphs closing the newsletter, preceded by a divider.
	Copyright []TemplateParagraph `yaml:"copyright"`

	// TitleFormat receives the issue number and the synthesized title.
	TitleFormat string `yaml:"title_format"`
	// DefaultIcon is used when no constituent post carries an icon emoji.
	DefaultIcon string `yaml:"default_icon"`
}

// defaultTemplatesYAML is the built-in boilerplate, matching the published
// newsletter layout.
const defaultTemplatesYAML = `
preface:
  - spans:
      - text: "见信好👋！"
  - spans:
      - text: "「不正集」是一档由 "
      - text: "ZY"
        link: "https://varzy.me"
      - text: " 维护的个人 Newsletter，聚焦且不止步于有趣的互联网内容，每周五快六常规更新，内容与 Telegram 频道 "
      - text: "贼歪说"
        link: "https://t.me/aboutzy"
      - text: " 基本同步。除此之外我还会不定期更新一些 Bonus 内容。"
preface_period: "本期是「常规更新」，收录了贼歪说从 %s 至 %s 的更新内容。"
shared_section: "本周分享"
one_more_thing_section: "One More Thing"
friendly_links_section: "友情链接"
friendly_links:
  - spans:
      - text: "广告位免费出租中... 欢迎互换友链🔗。"
copyright:
  - spans:
      - text: "以上就是本期「不正集」的全部内容，喜欢的话可以转发或推荐给您的朋友。"
  - spans:
      - text: "订阅地址："
      - text: "varzy.zhubai.love"
        link: "https://varzy.zhubai.love"
      - text: "｜个人主页："
      - text: "varzy.me"
        link: "https://varzy.me"
  - spans:
      - text: "Thanks for Reading💗"
title_format: "#%d｜%s"
default_icon: "🗞️"
`

// LoadTemplates parses the newsletter boilerplate. With an empty path the
// built-in defaults are used; otherwise the YAML file at path replaces them
// entirely.
func LoadTemplates(path string) (*Templates, error) {
	raw := []byte(defaultTemplatesYAML)
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template file: %w", err)
		}
	}

	var t Templates
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &t, nil
}
