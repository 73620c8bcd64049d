package prompts

import (
	"strings"
)

type example struct {
	sentences []string
	hashtags  string
}

var englishExample = example{
	sentences: []string{
		"The sun is slipping behind the hills and the whole sky turns gold.",
		"We stopped the car just to watch it happen.",
		"Warm coffee in hand, nobody said a word.",
		"Some moments do not need a filter.",
		"The wind smelled like salt and rain.",
		"Kids were still chasing the last waves on the shore.",
		"A fisherman packed up his nets, smiling at nothing in particular.",
		"The colors changed every minute, from orange to pink to deep violet.",
		"We stayed until the first stars showed up.",
		"Tomorrow we come back, same spot, same time.",
	},
	hashtags: "#sunset #beach #coffeetime #travel #goldenhour #wanderlust",
}

// localExamples holds the same worked example in the local languages we have
// a translation for, keyed by lowercase language name.
var localExamples = map[string]example{
	"indonesian": {
		sentences: []string{
			"Matahari perlahan tenggelam di balik bukit dan seluruh langit berubah keemasan.",
			"Kami menepikan mobil hanya untuk menyaksikannya.",
			"Dengan kopi hangat di tangan, tidak ada yang berkata sepatah kata pun.",
			"Beberapa momen tidak butuh filter.",
			"Angin membawa aroma garam dan hujan.",
			"Anak-anak masih mengejar ombak terakhir di tepi pantai.",
			"Seorang nelayan merapikan jaringnya sambil tersenyum.",
			"Warnanya berubah setiap menit, dari jingga ke merah muda hingga ungu tua.",
			"Kami bertahan sampai bintang pertama muncul.",
			"Besok kami kembali, tempat yang sama, jam yang sama.",
		},
		hashtags: "#senja #pantai #kopisore #jalanjalan #momenindah #indonesia",
	},
	"spanish": {
		sentences: []string{
			"El sol se esconde detrás de las colinas y todo el cielo se vuelve dorado.",
			"Paramos el coche solo para verlo.",
			"Con un café caliente en la mano, nadie dijo una palabra.",
			"Hay momentos que no necesitan filtro.",
			"El viento olía a sal y a lluvia.",
			"Los niños seguían persiguiendo las últimas olas en la orilla.",
			"Un pescador recogía sus redes, sonriendo sin motivo.",
			"Los colores cambiaban cada minuto, del naranja al rosa y al violeta.",
			"Nos quedamos hasta que aparecieron las primeras estrellas.",
			"Mañana volvemos, mismo lugar, misma hora.",
		},
		hashtags: "#atardecer #playa #cafe #viajes #horadorada #momentos",
	},
}

// workedExample returns the two example lines with exactly n sentences each.
// Languages without a translation reuse the Indonesian line and say so.
func workedExample(language string, n int) (primary, secondary, note string) {
	local, ok := localExamples[strings.ToLower(language)]
	if !ok {
		local = localExamples["indonesian"]
		note = "the first line is shown in Indonesian; write yours in " + language
	}
	return local.line(n), englishExample.line(n), note
}

func (e example) line(n int) string {
	if n <= 0 || n > len(e.sentences) {
		n = len(e.sentences)
	}
	return strings.Join(e.sentences[:n], " ") + " " + e.hashtags
}
