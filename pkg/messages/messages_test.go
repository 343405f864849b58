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

package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		wantLang language.Tag
		key      Key
		args     []any
		want     string
	}{
		{
			name:     "english_uses_key",
			lang:     "en",
			wantLang: language.English,
			key:      Rejected,
			want:     "Wrong object type",
		},
		{
			name:     "russian",
			lang:     "ru",
			wantLang: language.Russian,
			key:      PickCell,
			want:     "Укажите ячейку таблицы",
		},
		{
			name:     "russian_region",
			lang:     "ru-RU",
			wantLang: language.Russian,
			key:      NoCell,
			want:     "В указанной точке нет ячейки таблицы",
		},
		{
			name:     "unsupported_falls_back_to_english",
			lang:     "de",
			wantLang: language.English,
			key:      DeleteQuestion,
			want:     "Delete the source object (for tables, the cell contents)?",
		},
		{
			name:     "formatted",
			lang:     "en",
			wantLang: language.English,
			key:      SessionDone,
			args:     []any{3},
			want:     "Pasted into 3 object(s)",
		},
		{
			name:     "formatted_russian",
			lang:     "ru",
			wantLang: language.Russian,
			key:      SessionDone,
			args:     []any{2},
			want:     "Вставлено в объектов: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, c.Language())
			assert.Equal(t, tt.want, c.Get(tt.key, tt.args...))
		})
	}
}

func TestCatalogInvalidLanguage(t *testing.T) {
	_, err := New("not a language tag")
	assert.Error(t, err)
}

func TestEveryKeyIsTranslated(t *testing.T) {
	keys := []Key{SelectSource, SelectDestination, Rejected, DeleteQuestion, PickCell, NoCell, SessionDone, NothingToPaste}
	for _, k := range keys {
		assert.NotEmpty(t, russian[k], "missing russian text for %q", k)
	}
}
