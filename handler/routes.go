package handler

import "github.com/gin-gonic/gin"

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	System  *SystemHandler
	Faiss   *FaissHandler
	Ofertas *OfertasHandler
}

// RegisterRoutes mounts the public API on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", Wrap(h.System.Root))
	r.GET("/health", Wrap(h.System.Health))

	faiss := r.Group("/faiss")
	{
		faiss.GET("/health", Wrap(h.Faiss.Health))
		faiss.POST("/search", Wrap(h.Faiss.Search))
	}

	ofertas := r.Group("/api/ofertas")
	{
		ofertas.GET("/ping", Wrap(h.Ofertas.Ping))
		ofertas.POST("/procesarPliego", Wrap(h.Ofertas.ProcesarPliego))
		ofertas.POST("/generarOferta", Wrap(h.Ofertas.GenerarOferta))
		ofertas.POST("/obtenerEstadoOferta", Wrap(h.Ofertas.ObtenerEstadoOferta))
		ofertas.GET("/listarOfertas", Wrap(h.Ofertas.ListarOfertas))
		ofertas.POST("/recuperaFichero", Wrap(h.Ofertas.RecuperaFichero))
	}
}
