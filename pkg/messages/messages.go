// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package messages holds the localized prompt strings shown during a paste session.
package messages

import (
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a message in the catalog. The English text doubles as the key.
type Key string

const (
	SelectSource      Key = "Select the source object (text, leader, table or dimension)"
	SelectDestination Key = "Select an object (text, leader or table) to replace its contents"
	Rejected          Key = "Wrong object type"
	DeleteQuestion    Key = "Delete the source object (for tables, the cell contents)?"
	PickCell          Key = "Pick a table cell"
	NoCell            Key = "No table cell at this point"
	SessionDone       Key = "Pasted into %d object(s)"
	NothingToPaste    Key = "The source has no text to paste"
)

var supported = []language.Tag{language.English, language.Russian}

var russian = map[Key]string{
	SelectSource:      "Выберите объект-исходник (текст, выноска, таблица или размер)",
	SelectDestination: "Выберите объект (текст, выноска или таблица) для замены содержимого",
	Rejected:          "Неверный тип объекта",
	DeleteQuestion:    "Удалять объект-исходник (для таблиц - содержимое ячейки)?",
	PickCell:          "Укажите ячейку таблицы",
	NoCell:            "В указанной точке нет ячейки таблицы",
	SessionDone:       "Вставлено в объектов: %d",
	NothingToPaste:    "У исходника нет текста для вставки",
}

var cat = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range russian {
		if err := b.SetString(language.Russian, string(key), text); err != nil {
			panic(err)
		}
	}
	return b
}()

// 🌐 Catalog prints messages in one language
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a catalog for the closest supported match of lang ("en", "ru-RU", ...)
func New(lang string) (*Catalog, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, errors.Errorf("parsing language %q: %w", lang, err)
	}
	tag, _, _ := language.NewMatcher(supported).Match(requested)
	base, _ := tag.Base()
	tag = language.Make(base.String())
	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}, nil
}

// Language returns the language messages are printed in
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Get returns the localized text of key
func (c *Catalog) Get(key Key, args ...any) string {
	return c.printer.Sprintf(string(key), args...)
}
