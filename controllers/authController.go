package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/middlewares"
	"github.com/lashup/lashup-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput         = "invalid input"
	msgEmailTaken           = "Email already registered"
	msgFailedToHashPassword = "failed to hash password"
	msgInvalidCredentials   = "Invalid credentials"
	msgInternalServerError  = "Internal server error"
	msgUserNotFound         = "User not found"
	msgNotAuthenticated     = "Could not identify user"
	msgActiveReferences     = "Cannot delete account with active bookings or orders. Please cancel or complete them first."
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// countActiveReferences returns how many non-terminal bookings and orders
// still point at the user. A user with active references may not be deleted.
func countActiveReferences(userID int) (int64, error) {
	var bookings int64
	if err := initializers.DB.Model(&models.Booking{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.BookingPending, models.BookingConfirmed}).
		Count(&bookings).Error; err != nil {
		return 0, err
	}

	var orders int64
	if err := initializers.DB.Model(&models.ProductOrder{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.OrderPending, models.OrderConfirmed, models.OrderShipped}).
		Count(&orders).Error; err != nil {
		return 0, err
	}

	return bookings + orders, nil
}

// Register handles user registration
func Register(ctx *gin.Context) {
	var signUpData struct {
		Name     string `json:"name" binding:"required,min=2"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	email := strings.ToLower(signUpData.Email)
	if _, err := findUserByEmail(email); err == nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgEmailTaken)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(signUpData.Name),
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(strings.ToLower(loginData.Email))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString, "user": user})
}

func GetProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

func UpdateProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var profileData struct {
		Name  string `json:"name" binding:"required,min=2"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := ctx.ShouldBindJSON(&profileData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	email := strings.ToLower(profileData.Email)
	existing, err := findUserByEmail(email)
	if err == nil && int(existing.ID) != userID {
		sendErrorResponse(ctx, http.StatusBadRequest, "Email is already taken")
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error during email check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	user.Name = strings.TrimSpace(profileData.Name)
	user.Email = email
	if err := initializers.DB.Save(&user).Error; err != nil {
		log.Println("Profile update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

func ChangePassword(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var passwordData struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&passwordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if passwordData.CurrentPassword == passwordData.NewPassword {
		sendErrorResponse(ctx, http.StatusBadRequest, "New password must be different from current password")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := comparePasswords(user.Password, passwordData.CurrentPassword); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hashedPassword, err := hashPassword(passwordData.NewPassword)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := initializers.DB.Model(&user).Update("password", hashedPassword).Error; err != nil {
		log.Println("Password update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteAccount removes the caller's own account after a password check,
// unless active bookings or orders still reference it.
func DeleteAccount(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	var deleteData struct {
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&deleteData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Password is required to delete account")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := comparePasswords(user.Password, deleteData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Incorrect password")
		return
	}

	active, err := countActiveReferences(userID)
	if err != nil {
		log.Println("Active reference check error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if active > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgActiveReferences)
		return
	}

	if err := initializers.DB.Delete(&user).Error; err != nil {
		log.Println("Account deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

func GetAllUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Order("created_at desc").Find(&users).Error; err != nil {
		log.Println("User listing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

func GetUserDetails(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
}

// UpdateUserRole lets an admin promote or demote another user. Admins cannot
// change their own role.
func UpdateUserRole(ctx *gin.Context) {
	currentUserID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	targetUserID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	if currentUserID == targetUserID {
		sendErrorResponse(ctx, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	var roleData struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&roleData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	role := strings.ToUpper(strings.TrimSpace(roleData.Role))
	if role != models.RoleUser && role != models.RoleAdmin {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid role")
		return
	}

	// Conditional update so the self-check holds under concurrent calls too.
	result := initializers.DB.Model(&models.User{}).
		Where("id = ? AND id <> ?", targetUserID, currentUserID).
		Update("role", role)
	if result.Error != nil {
		log.Println("Role update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, targetUserID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User role updated successfully", "user": user})
}

// DeleteUser removes a user by id (admin), with the same active-reference
// guard as self-deletion.
func DeleteUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	active, err := countActiveReferences(userID)
	if err != nil {
		log.Println("Active reference check error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if active > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgActiveReferences)
		return
	}

	if err := initializers.DB.Delete(&user).Error; err != nil {
		log.Println("User deletion error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
