package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.CallbackMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), s.CallbackMiddleware()...)) // For form_post response mode

	s.RegisterRouteHandler("GET "+RouteMetrics, ChainMiddleware(s.metrics.handler.ServeHTTP, s.RecoverMiddleware))
}
