// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package summary

import (
	"fmt"
	"math/rand/v2"
)

// Picker chooses an index in [0, n). Tests substitute a deterministic one.
type Picker interface {
	IntN(n int) int
}

// randPicker draws from the global math/rand/v2 source.
type randPicker struct{}

func (randPicker) IntN(n int) int { return rand.IntN(n) }

// Sentence pools for the templated fallback summary.
var (
	intros = []string{
		"Bu yazı, konuya hızlı bir giriş yapar ve temel kavramları netleştirir.",
		"Bu içerikte, en kritik noktaları sade bir dille toparlayıp pratik örneklerle destekleriz.",
		"Bu yazı, öğrenmeyi hızlandıran kısa ipuçları ve uygulanabilir adımlar sunar.",
	}

	middles = []string{
		"Okuyucuya “ne, neden, nasıl” çerçevesinde düzenli bir akış sağlar.",
		"Kısa checklist ve best-practice önerileriyle daha profesyonel bir yaklaşım kazandırır.",
		"Sık yapılan hataları da işaret ederek doğru yönlendirme yapar.",
	}

	endings = []string{
		"Sonunda, portfolyo/LinkedIn’de paylaşılabilir bir çıktı hedeflenir.",
		"Özetle, hem öğrenme hem üretim tarafını aynı anda ileri taşır.",
		"Son bölümde, bir mini uygulama fikriyle öğrendiklerini pekiştirirsin.",
	}
)

// Fallback composes an offline summary: the quoted title followed by one
// sentence from each pool, each chosen independently.
func Fallback(title string, p Picker) string {
	if p == nil {
		p = randPicker{}
	}
	return fmt.Sprintf("Kısa özet: \"%s\" — %s %s %s",
		title,
		pick(intros, p),
		pick(middles, p),
		pick(endings, p),
	)
}

func pick(pool []string, p Picker) string {
	i := p.IntN(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}
