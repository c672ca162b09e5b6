// Package window calcula a janela ativa de partidas: de hoje 12:00:00 até
// amanhã 23:59:59.999999, no fuso configurado, recalculada a cada requisição.
package window

import "time"

type Window struct {
	Start time.Time
	End   time.Time
}

// Active retorna a janela para o instante now no fuso loc
func Active(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	n := now.In(loc)
	y, m, d := n.Date()
	return Window{
		Start: time.Date(y, m, d, 12, 0, 0, 0, loc),
		End:   time.Date(y, m, d+1, 23, 59, 59, 999999000, loc),
	}
}

// Contains é inclusivo nas duas pontas
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Key identifica a janela (usada nas chaves de cache)
func (w Window) Key() string {
	return w.Start.Format("20060102")
}
