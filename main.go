package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gerenciador-tarefas/auth"
	"gerenciador-tarefas/database"
	"gerenciador-tarefas/firebase"
	"gerenciador-tarefas/handlers"
	"gerenciador-tarefas/utilities"

	"github.com/joho/godotenv"
)

// tokens de sessão expiram em uma hora; não há mecanismo de refresh
const tokenExpiration = time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	utilities.InitLogger()

	ctx := context.Background()

	app, err := firebase.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("Erro ao inicializar Firebase: %v", err)
	}

	identity, err := firebase.NewAuthProvider(ctx, app)
	if err != nil {
		log.Fatalf("Erro ao inicializar provedor de identidade: %v", err)
	}

	store, err := database.ConnectFirestore(ctx, app)
	if err != nil {
		log.Fatalf("Erro ao conectar ao Firestore: %v", err)
	}
	defer store.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET não está definido nas variáveis de ambiente")
	}
	tokens := auth.NewTokenService(jwtSecret, tokenExpiration)

	api := handlers.NewApp(store, identity, tokens)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: LoadRoutes(api),
	}

	go func() {
		utilities.LogInfo("Servidor iniciado na porta %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Erro no servidor HTTP: %v", err)
		}
	}()

	// Encerramento gracioso: fecha o servidor e a conexão com o store
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	utilities.LogInfo("Encerrando o servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utilities.LogError(err, "Erro ao encerrar o servidor")
	}
}
