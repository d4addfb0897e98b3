package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/db"
	"storefront/models"
	"storefront/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func validRole(role string) bool {
	return role == models.RoleUser || role == models.RoleAdmin
}

func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)

	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", search),
			utils.RegexFilter("email", search),
		}
	}

	opts := mongoFindPage(skip, limit, bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding users")
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}

	total, _ := db.UserCollection.CountDocuments(ctx, filter)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"users": users,
		"total": total,
		"page":  skip/limit + 1,
		"limit": limit,
	})
}

// CreateUser provisions an account directly, optionally with the admin role.
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if !strings.Contains(input.Email, "@") {
		fields["email"] = "A valid email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}
	if !validRole(input.Role) {
		fields["role"] = "Role must be user or admin"
	}
	if len(fields) > 0 {
		utils.RespondWithValidationError(w, fields)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	user := models.User{
		UserID:       "u" + utils.GenerateRandomString(10),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		CreatedAt:    time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// UpdateUser changes a user's name and/or role. Email and password are not
// editable through the admin console.
func UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := ps.ByName("userid")

	var input struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	update := bson.M{}
	if name := strings.TrimSpace(input.Name); name != "" {
		update["name"] = name
	}
	if input.Role != "" {
		if !validRole(input.Role) {
			utils.RespondWithValidationError(w, map[string]string{"role": "Role must be user or admin"})
			return
		}
		update["role"] = input.Role
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	result, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"userid": ps.ByName("userid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User deleted"})
}
