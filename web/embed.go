// Package web 打包日历页面的模板与静态资源。
package web

import "embed"

// Assets 包含 template/ 与 static/ 两个目录。
//
//go:embed template/*.html static/*
var Assets embed.FS
