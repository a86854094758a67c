package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/sentiment"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/stopwords"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/pkg/config"
)

var sampleEssays = map[string]string{
	"short": "I love cats and I am not great at cooking",
	"medium": `about me:<br />
        i'm a laid back guy who enjoys hiking, board games and the occasional
        glass of red wine. my friends say i'm a good listener. i'm not a fan of
        loud bars but i never say no to live music. looking for someone who can
        make me laugh and doesn't take life too seriously.`,
	"long": strings.Repeat(`i moved to the city a few years ago and haven't looked back.
        during the week i work on software, on weekends you'll find me at the
        farmers market or on a trail somewhere. i'm not much of a cook, but i
        make a great breakfast. favorite books change every month, right now it's
        science fiction. without coffee i'm not a nice person. `, 20),
}

func records(n int) []dataset.LabeledRecord {
	out := make([]dataset.LabeledRecord, 0, n)
	groups := []dataset.Group{"no", "yes"}
	for i := 0; i < n; i++ {
		out = append(out, dataset.LabeledRecord{Text: sampleEssays["medium"], Group: groups[i%2]})
	}
	return out
}

func BenchmarkTokenize(b *testing.B) {
	for name, text := range sampleEssays {
		recs := []dataset.LabeledRecord{{Text: text, Group: "no"}}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				grams := tokenizer.Tokenize(recs, tokenizer.Options{N: 2, StripHTML: true})
				_ = grams
			}
		})
	}
}

func BenchmarkCountAndTfIdf(b *testing.B) {
	stops := stopwords.Default()
	for _, size := range []int{100, 1000, 5000} {
		grams := stops.Filter(tokenizer.Bigrams(records(size), true))
		b.Run(fmt.Sprintf("records_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				rows := aggregate.TfIdf(aggregate.CountByGroup(grams), []dataset.Group{"no", "yes"})
				_ = rows
			}
		})
	}
}

func BenchmarkAnalyze(b *testing.B) {
	raw := make([]dataset.Record, 0, 2000)
	for i, rec := range records(2000) {
		category := "no"
		if i%2 == 1 {
			category = "sometimes"
		}
		raw = append(raw, dataset.NewRecord(rec.Text, true, category))
	}
	stops := stopwords.Default()
	lex := sentiment.DefaultLexicon()
	opts := pipeline.OptionsFromConfig(config.Default())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := pipeline.Analyze(context.Background(), raw, stops, lex, opts, nil)
		_ = res
	}
}
