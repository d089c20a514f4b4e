package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path, contentType string, body io.Reader, headers map[string]string) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	root, _ := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *client) {
	var (
		baseURL = envOr("ACCOUNTD_URL", "http://localhost:8080")
		out     = envOr("ACCOUNTD_OUT", "text")
		timeout = 60 * time.Second
	)

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}

	root := &cobra.Command{
		Use:   "accountctl",
		Short: "CLI para el API de cuentas (registro, login, refresh, logout)",
		// Los flags se parsean recién en Execute; copiarlos al client acá
		// y no antes, si no --url y --out no tendrían efecto.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.BaseURL = baseURL
			cl.OutFormat = out
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del API (env ACCOUNTD_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	// register: multipart con avatar obligatorio
	var regFullName, regEmail, regUsername, regPassword, regAvatar, regCover string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Registrar un usuario nuevo (sube avatar y portada)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if regEmail == "" || regUsername == "" || regPassword == "" || regFullName == "" {
				return fmt.Errorf("--full-name, --email, --username y --password son requeridos")
			}
			if regAvatar == "" {
				return fmt.Errorf("--avatar es requerido")
			}

			buf := &bytes.Buffer{}
			mp := multipart.NewWriter(buf)
			fields := map[string]string{
				"fullName": regFullName,
				"email":    regEmail,
				"username": regUsername,
				"password": regPassword,
			}
			for k, v := range fields {
				if err := mp.WriteField(k, v); err != nil {
					return err
				}
			}
			if err := attachFile(mp, "avatar", regAvatar); err != nil {
				return err
			}
			if regCover != "" {
				if err := attachFile(mp, "coverImage", regCover); err != nil {
					return err
				}
			}
			if err := mp.Close(); err != nil {
				return err
			}

			status, body, err := cl.do("POST", "/v1/auth/register", mp.FormDataContentType(), buf, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("register fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	registerCmd.Flags().StringVar(&regFullName, "full-name", "", "Nombre completo")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "Email")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "Username")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "Password")
	registerCmd.Flags().StringVar(&regAvatar, "avatar", "", "Path local del avatar (requerido)")
	registerCmd.Flags().StringVar(&regCover, "cover", "", "Path local de la portada (opcional)")

	// login: imprime los tokens del body
	var loginEmail, loginUsername, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login con email o username",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginPassword == "" || (loginEmail == "" && loginUsername == "") {
				return fmt.Errorf("--password y (--email o --username) son requeridos")
			}
			payload := map[string]string{
				"email":    loginEmail,
				"username": loginUsername,
				"password": loginPassword,
			}
			b, _ := json.Marshal(payload)
			status, body, err := cl.do("POST", "/v1/auth/login", "application/json", bytes.NewReader(b), nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("login fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email")
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")

	// refresh: toma el refresh token por flag o env
	var refreshToken string
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rotar el par de tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := refreshToken
			if tok == "" {
				tok = os.Getenv("ACCOUNTD_REFRESH_TOKEN")
			}
			if tok == "" {
				return fmt.Errorf("falta refresh token (flag --token o env ACCOUNTD_REFRESH_TOKEN)")
			}
			b, _ := json.Marshal(map[string]string{"refreshToken": tok})
			status, body, err := cl.do("POST", "/v1/auth/refresh-token", "application/json", bytes.NewReader(b), nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("refresh fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	refreshCmd.Flags().StringVar(&refreshToken, "token", "", "Refresh token vigente")

	// logout: requiere access token
	var accessToken string
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión activa",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := accessToken
			if tok == "" {
				tok = os.Getenv("ACCOUNTD_ACCESS_TOKEN")
			}
			if tok == "" {
				return fmt.Errorf("falta access token (flag --token o env ACCOUNTD_ACCESS_TOKEN)")
			}
			h := map[string]string{"Authorization": "Bearer " + tok}
			status, body, err := cl.do("POST", "/v1/auth/logout", "application/json", nil, h)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("logout fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	logoutCmd.Flags().StringVar(&accessToken, "token", "", "Access token vigente")

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Chequear que el servicio responde",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/readyz", "", nil, nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}

	root.AddCommand(registerCmd, loginCmd, refreshCmd, logoutCmd, pingCmd)

	return root, cl
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func attachFile(mp *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fw, err := mp.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, f)
	return err
}
