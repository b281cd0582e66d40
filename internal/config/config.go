// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1080
	ScreenHeight = 560

	// Игровое поле (канвас 800x500), сдвинутое под верхнюю панель
	FieldWidth   = 800
	FieldHeight  = 500
	FieldOffsetX = 0
	FieldOffsetY = 60

	// Боковая панель с башнями игрока
	PanelX     = FieldWidth + 10
	PanelWidth = ScreenWidth - PanelX - 10

	TickRate     = 60   // шагов симуляции в секунду
	MaxDeltaTime = 0.25 // секунд, больше за кадр не догоняем
	TickMillis   = 1000.0 / TickRate

	StartingLives         = 10
	ChallengeEnemyCount   = 20
	ChallengeSpawnMillis  = 1000
	CampaignSpawnMillis   = 800
	CampaignWaves         = 5
	MaxTowers             = 5
	PathClearance         = 35.0 // нельзя строить ближе к дороге
	TowerSpacing          = 40.0 // минимальное расстояние между башнями
	ProjectileSpeed       = 15.0 // пикселей за тик
	HitRadius             = 30.0
	HitEffectFrames       = 10
	ChallengeSpeedDivisor = 100.0 // скорость монстра в контракте -> пиксели за тик
	ClickCooldown         = 300   // мс, для кнопок UI

	TowerSelectRadius = 22.0
	PathWidth         = 60.0
	PathBorderWidth   = 64.0
)

var (
	BackgroundColor  = color.RGBA{34, 52, 34, 255}
	PathColor        = color.RGBA{85, 85, 85, 255}
	PathBorderColor  = color.RGBA{51, 51, 51, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDimColor     = color.RGBA{160, 160, 170, 255}
	PanelColor       = color.RGBA{20, 20, 30, 220}
	HUDColor         = color.RGBA{10, 10, 18, 235}
	RangeFillColor   = color.RGBA{0, 255, 255, 20}
	RangeStrokeColor = color.RGBA{0, 255, 255, 77}
	ShadowColor      = color.RGBA{0, 0, 0, 77}
	TowerBaseColor   = color.RGBA{42, 42, 42, 255}
	TowerBaseStroke  = color.RGBA{68, 68, 68, 255}
	BulletColor      = color.RGBA{255, 235, 59, 255}
	HPGoodColor      = color.RGBA{76, 175, 80, 255}
	HPWarnColor      = color.RGBA{255, 193, 7, 255}
	HPBadColor       = color.RGBA{244, 67, 54, 255}

	IdleStateColor    = color.RGBA{70, 130, 180, 220}
	ActiveStateColor  = color.RGBA{220, 60, 60, 220}
	VictoryStateColor = color.RGBA{50, 205, 50, 255}
	DefeatStateColor  = color.RGBA{90, 90, 90, 255}

	ButtonColor      = color.RGBA{60, 60, 80, 255}
	ButtonHover      = color.RGBA{80, 80, 110, 255}
	ButtonDisabled   = color.RGBA{40, 40, 48, 255}
	SelectionOutline = color.RGBA{0, 255, 255, 255}

	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4
	}
	SpeedMultipliers = []int{1, 2, 4}
)
