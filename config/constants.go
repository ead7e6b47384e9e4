package config

const (
	MaxImageDimension = 16384 // max width/height in pixels; prevents decompression bombs
	PreviewMaxWidth   = 320
	PreviewMaxHeight  = 180
	WebPQuality       = 80
)

const (
	DefaultHost       = "https://www.bing.com"
	DefaultMarket     = "zh-CN"
	DefaultResolution = "UHD"
	DefaultUserAgent  = "Mozilla/5.0 (compatible; Bingpaper/1.0)"
)

const (
	DefaultDirName    = "BingWallpapers"
	DefaultFilePrefix = "bing_"
	DefaultFileExt    = ".jpg"
	DefaultDateFormat = "2006-01-02"
	DefaultKeepCount  = 7
	PreviewDirName    = "previews"
)

const (
	MinDownloadMB          = 1
	DefaultMaxDownloadMB   = 50
	DefaultDownloadTimeout = 90 // seconds
)

const (
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
)
