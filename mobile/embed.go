//go:build mobile

package mobile

import "embed"

// dataFS 移动端内置资源
//
// go:embed 不能引用上级目录，打包前先同步一份：
//
//	cp -r data mobile/data
//
//go:embed data/intro.yaml data/page.yaml data/images
var dataFS embed.FS
