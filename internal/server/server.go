package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental_engine/internal/catalog"
	"rental_engine/internal/chatbot"
	"rental_engine/internal/history"
	"rental_engine/internal/logger"
	"rental_engine/internal/maintenance"
	"rental_engine/internal/model"
	"rental_engine/internal/pricing"
	"rental_engine/internal/recommend"
	"rental_engine/internal/task"
	"rental_engine/internal/user"

	"github.com/gin-gonic/gin"
)

// Server 代表 HTTP API 服务器
type Server struct {
	router       *gin.Engine
	userProvider user.Provider
	catalog      catalog.Provider
	engine       *recommend.Engine
	historyStore history.Store
	pricer       *pricing.SmartPricing
	predictor    *maintenance.Predictor
	bot          *chatbot.Bot
	tasks        *task.Manager

	// 请求未指定 limit 时使用的默认推荐数量
	recommendLimit int
}

// NewServer 创建新的 HTTP 服务器
func NewServer(
	up user.Provider,
	cat catalog.Provider,
	engine *recommend.Engine,
	hs history.Store,
	pricer *pricing.SmartPricing,
	predictor *maintenance.Predictor,
	bot *chatbot.Bot,
	tasks *task.Manager,
	recommendLimit int,
) *Server {
	if recommendLimit <= 0 {
		recommendLimit = recommend.DefaultLimit
	}
	s := &Server{
		router:         gin.Default(),
		userProvider:   up,
		catalog:        cat,
		engine:         engine,
		historyStore:   hs,
		pricer:         pricer,
		predictor:      predictor,
		bot:            bot,
		tasks:          tasks,
		recommendLimit: recommendLimit,
	}
	s.router.Use(s.corsMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")

	// 中间件：Token 鉴权
	v1.Use(s.authMiddleware())

	v1.GET("/cars", s.handleListCars)
	v1.GET("/cars/search", s.handleSearchCars)
	v1.POST("/recommend", s.handleRecommend)
	v1.POST("/rentals", s.handleRecordRental)
	v1.GET("/pricing/:car_id", s.handlePricing)
	v1.POST("/maintenance/:car_id/report", s.handleMaintenanceReport)
	v1.GET("/tasks/:id", s.handleGetTask)
	v1.POST("/chat", s.handleChat)
}

// authMiddleware 鉴权中间件
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		u, err := s.userProvider.GetUserByToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user", u)
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) (*model.User, bool) {
	uVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	return uVal.(*model.User), true
}

// handleListCars 返回完整车辆目录
// GET /api/v1/cars
func (s *Server) handleListCars(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cars": s.catalog.List()})
}

// handleSearchCars 目录搜索
// GET /api/v1/cars/search?q=...
func (s *Server) handleSearchCars(c *gin.Context) {
	q := c.Query("q")
	results := s.catalog.Search(q)
	if results == nil {
		results = []model.Car{}
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "results": results})
}

// RecommendRequest 推荐请求体
// 偏好字段按原样接受字符串，解析失败按"无约束"处理
type RecommendRequest struct {
	Category     string `json:"category"`
	MaxPrice     string `json:"max_price"`
	Seats        string `json:"seats"`
	Transmission string `json:"transmission"`
	Limit        int    `json:"limit"`
}

// handleRecommend 处理推荐请求
// POST /api/v1/recommend
func (s *Server) handleRecommend(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	query := recommend.ParsePreferences(recommend.RawPreferences{
		Category:     req.Category,
		MaxPrice:     req.MaxPrice,
		Seats:        req.Seats,
		Transmission: req.Transmission,
	})

	// 历史获取失败不阻断推荐，降级为无历史
	userHistory, err := s.historyStore.ForUser(u.ID)
	if err != nil {
		logger.Error("Failed to load history for user %s: %v", u.ID, err)
		userHistory = nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.recommendLimit
	}

	result := s.engine.Recommend(query, userHistory, limit)
	c.JSON(http.StatusOK, result)
}

// RentalRequest 记录一次租车
type RentalRequest struct {
	CarID  int      `json:"car_id" binding:"required"`
	Rating *float64 `json:"rating"`
}

// handleRecordRental 记录一次已完成的租车（含可选评分），供后续推荐个性化使用
// POST /api/v1/rentals
func (s *Server) handleRecordRental(c *gin.Context) {
	u, ok := s.currentUser(c)
	if !ok {
		return
	}

	var req RentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	car, err := s.catalog.Get(req.CarID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown car id"})
		return
	}

	record := model.RentalRecord{
		UserID:    u.ID,
		CarID:     car.ID,
		Category:  car.Category,
		Rating:    req.Rating,
		Timestamp: time.Now().Unix(),
	}
	if err := s.historyStore.Append(record); err != nil {
		logger.Error("Failed to save rental record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save rental"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// handlePricing 返回一辆车的调价表与未来价格预测
// 带 target_date 参数时额外返回最佳预订时机建议
// GET /api/v1/pricing/:car_id?days=14&target_date=2026-09-20
func (s *Server) handlePricing(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("car_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	car, err := s.catalog.Get(carID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown car id"})
		return
	}

	days := 14
	if d, err := strconv.Atoi(c.DefaultQuery("days", "14")); err == nil && d > 0 && d <= 60 {
		days = d
	}

	resp := gin.H{
		"car_id":      car.ID,
		"adjustments": s.pricer.GetAdjustments(car),
		"forecast":    s.pricer.Forecast(car, days),
	}

	if target := c.Query("target_date"); target != "" {
		targetDate, err := time.Parse("2006-01-02", target)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, expected YYYY-MM-DD"})
			return
		}
		daysRange := int(time.Until(targetDate).Hours() / 24)
		resp["booking_advice"] = s.pricer.OptimalBookingTime(car.Category, targetDate, daysRange)
	}

	c.JSON(http.StatusOK, resp)
}

// handleMaintenanceReport 异步生成维护报告，立即返回任务 ID
// POST /api/v1/maintenance/:car_id/report
func (s *Server) handleMaintenanceReport(c *gin.Context) {
	carID, err := strconv.Atoi(c.Param("car_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	car, err := s.catalog.Get(carID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown car id"})
		return
	}

	t := s.tasks.NewTask("maintenance_report")

	go func() {
		if err := s.tasks.UpdateStatus(t.ID, task.StatusProcessing); err != nil {
			logger.Error("Failed to update task %s: %v", t.ID, err)
			return
		}
		report := s.predictor.GenerateReport(car)
		if err := s.tasks.SetResult(t.ID, report); err != nil {
			logger.Error("Failed to set task result %s: %v", t.ID, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"task_id": t.ID})
}

// handleGetTask 查询异步任务状态
// GET /api/v1/tasks/:id
func (s *Server) handleGetTask(c *gin.Context) {
	t, err := s.tasks.GetTask(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// ChatRequest 聊天请求体
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// handleChat 关键词问答
// POST /api/v1/chat
func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": s.bot.Reply(req.Message)})
}
