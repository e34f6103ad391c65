package router

import "github.com/gin-gonic/gin"

// APIModule 三个分组：public 免登录，authed 需要 JWT，admin 再叠加角色校验
type APIModule interface {
	MountAPI(public, authed, admin *gin.RouterGroup)
}

// AdminModule 管理端独立进程用，分组整体已做过 admin 鉴权
type AdminModule interface {
	MountAdmin(g *gin.RouterGroup)
}

func mountAPI(public, authed, admin *gin.RouterGroup, mods ...APIModule) {
	for _, m := range mods {
		m.MountAPI(public, authed, admin)
	}
}

func mountAdmin(g *gin.RouterGroup, mods ...AdminModule) {
	for _, m := range mods {
		m.MountAdmin(g)
	}
}
