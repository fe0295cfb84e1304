package auth

import "golang.org/x/crypto/bcrypt"

// custo fixo de 10, compatível com os hashes já gravados na coleção users
const bcryptCost = 10

// HashPassword gera o hash bcrypt da senha em texto claro.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compara a senha em texto claro com o hash armazenado.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
