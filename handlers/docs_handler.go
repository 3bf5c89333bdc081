package handlers

import (
	"log"
	"net/http"
	"os"
)

type DocHandler struct{}

func NewDocHandler() *DocHandler {
	return &DocHandler{}
}

// ServePrivacyPolicy returns the HTML page required by the app stores.
func (h *DocHandler) ServePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	const privacyHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Privacy Policy - Arcana</title>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
			.container { background-color: #fff; padding: 40px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
			h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
			h2 { color: #34495e; margin-top: 30px; }
			.date { color: #7f8c8d; font-style: italic; margin-bottom: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Privacy Policy</h1>
			<div class="date">Last updated: August 12, 2026</div>
			<p>Welcome to Arcana. This Privacy Policy explains how we collect, use, and protect your information when you use our app.</p>
			<h2>1. Information We Collect</h2>
			<p>When you sign in we receive your name, email address and profile image from your identity provider. If you choose to add a birth date, we store it to compute your zodiac sign and personalize readings.</p>
			<h2>2. Usage Data</h2>
			<p>We record the days on which you open the app to maintain your daily streak, and the daily card drawn for you.</p>
			<h2>3. Contact</h2>
			<p>Questions about this policy: privacy@arcana.app</p>
		</div>
	</body>
	</html>
	`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(privacyHtml))
}

// ServeTermsOfServices returns the HTML page required by the app stores.
func (h *DocHandler) ServeTermsOfServices(w http.ResponseWriter, r *http.Request) {
	const termsHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Terms of Service - Arcana</title>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background-color: #f9f9f9; }
			.container { background-color: #fff; padding: 40px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
			h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
			h2 { color: #34495e; margin-top: 30px; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Terms of Service</h1>
			<p>Arcana provides daily tarot readings and horoscopes for entertainment purposes only. Readings are not professional advice of any kind.</p>
			<h2>Accounts</h2>
			<p>You are responsible for the security of your account. We may remove accounts that abuse the service.</p>
			<h2>Contact</h2>
			<p>support@arcana.app</p>
		</div>
	</body>
	</html>
	`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(termsHtml))
}

// GetAppMinVersion tells clients the oldest app build the API still supports.
func (h *DocHandler) GetAppMinVersion(w http.ResponseWriter, r *http.Request) {
	appAndroidMinVersion := os.Getenv("ANDROID_MIN_VERSION")
	if appAndroidMinVersion == "" {
		log.Println("ANDROID_MIN_VERSION environment variable is not set")
		respondWithError(w, http.StatusInternalServerError, "Version configuration missing")
		return
	}

	appIOSMinVersion := os.Getenv("IOS_MIN_VERSION")
	if appIOSMinVersion == "" {
		log.Println("IOS_MIN_VERSION environment variable is not set")
		respondWithError(w, http.StatusInternalServerError, "Version configuration missing")
		return
	}

	type MinVersion struct {
		MinAndroidVersion string `json:"min_android_version_code"`
		MinIOSVersion     string `json:"min_ios_version_code"`
		UpdateMessage     string `json:"update_message"`
	}

	respondWithJSON(w, http.StatusOK, &MinVersion{
		MinAndroidVersion: appAndroidMinVersion,
		MinIOSVersion:     appIOSMinVersion,
		UpdateMessage:     "An important update is available! Please update to continue using the app.",
	})
}
