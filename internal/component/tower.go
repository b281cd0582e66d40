// component/tower.go
package component

// Tower - установленная башня. Не двигается до конца сессии.
type Tower struct {
	SourceID     string  // ID NFT, из которого скопированы характеристики
	Damage       int     // Урон одного снаряда
	Range        float64 // Радиус действия в пикселях
	FireInterval float64 // Перезарядка в мс
	LastFire     float64 // Время последнего выстрела (мс игрового времени)
	HasFired     bool    // Стреляла ли башня хоть раз
	Rarity       int     // 1..4, влияет на цвет
	Selected     bool    // Показывать ли радиус
}

// Ready сообщает, прошла ли перезарядка к моменту now.
func (t *Tower) Ready(now float64) bool {
	return !t.HasFired || now-t.LastFire >= t.FireInterval
}

// MarkFired фиксирует выстрел. Время выстрела никогда не уменьшается.
func (t *Tower) MarkFired(now float64) {
	if t.HasFired && now < t.LastFire {
		return
	}
	t.LastFire = now
	t.HasFired = true
}
