package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gobudget/models"
	"gobudget/pkg/ledger"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)

	authGroup.GET("/currencies", listCurrenciesHandler)
	authGroup.POST("/currencies", createCurrencyHandler)

	authGroup.GET("/budgets", listBudgetsHandler)
	authGroup.POST("/budgets", createBudgetHandler)

	b := authGroup.Group("/budgets/:bid")
	b.GET("", getBudgetHandler)
	b.PUT("", updateBudgetHandler)
	b.PUT("/access", updateBudgetAccessHandler)
	b.GET("/dashboard", dashboardHandler)

	b.GET("/accounts", listAccountsHandler)
	b.POST("/accounts", createAccountHandler)
	b.GET("/accounts/:aid", getAccountHandler)
	b.PUT("/accounts/:aid", updateAccountHandler)
	b.DELETE("/accounts/:aid", deleteAccountHandler)

	b.GET("/categories", listCategoriesHandler)
	b.POST("/categories", createCategoryHandler)
	b.GET("/categories/lookup", lookupCategoriesHandler)
	b.GET("/categories/:cid", getCategoryHandler)
	b.PUT("/categories/:cid", updateCategoryHandler)
	b.DELETE("/categories/:cid", deleteCategoryHandler)

	b.GET("/expenses", listExpensesHandler)
	b.POST("/expenses", createExpenseHandler)
	b.GET("/expenses/:eid", getExpenseHandler)
	b.PUT("/expenses/:eid", updateExpenseHandler)
	b.DELETE("/expenses/:eid", deleteExpenseHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("username", username)
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "is_superuser": user.IsSuperuser})
}

// getUserFromContext fetches the currently authenticated user using the username set by jwtAuthMiddleware
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	unameVal, _ := c.Get("username")
	if unameVal == nil {
		return nil, false
	}
	uname := unameVal.(string)
	var user models.User
	if err := db.Where("username = ?", uname).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// budgetScope loads the budget addressed in the URL with its access lists and
// enforces read or write permission. A missing budget is 404, a failed check
// 403; the two are never conflated. Writes the error response itself and
// reports success via the bool.
func budgetScope(c *gin.Context, needWrite bool) (*models.Budget, *models.User, bool) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, nil, false
	}
	id, err := strconv.Atoi(c.Param("bid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		return nil, nil, false
	}
	var budget models.Budget
	if err := db.Preload("ReadAccess").Preload("WriteAccess").Preload("Currency").First(&budget, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
		return nil, nil, false
	}
	allowed := ledger.CanRead(&budget, user)
	if needWrite {
		allowed = ledger.CanWrite(&budget, user)
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": ledger.Translate(db, "PERMISSION_DENIED", langCode())})
		return nil, nil, false
	}
	return &budget, user, true
}

// fieldError writes a 400 with a field-scoped validation message, the shape
// every form-style endpoint uses for rejected input.
func fieldError(c *gin.Context, field, translationName string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"errors": gin.H{field: ledger.Translate(db, translationName, langCode())},
	})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := signAccessToken(&user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

func signAccessToken(user *models.User, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":  user.Username,
		"superuser": user.IsSuperuser,
		"exp":       time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := signAccessToken(&user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func listCurrenciesHandler(c *gin.Context) {
	var currencies []models.Currency
	if err := db.Order("name").Find(&currencies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, currencies)
}

// createCurrencyHandler adds reference data; superusers only.
func createCurrencyHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !user.IsSuperuser {
		c.JSON(http.StatusForbidden, gin.H{"error": ledger.Translate(db, "PERMISSION_DENIED", langCode())})
		return
	}
	var req struct {
		Name   string `json:"name" binding:"required"`
		Symbol string `json:"symbol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cur := models.Currency{Name: req.Name, Symbol: req.Symbol}
	if err := db.Create(&cur).Error; err != nil {
		if isUniqueConstraintError(err) {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": cur.ID})
}
