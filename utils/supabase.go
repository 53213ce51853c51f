package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"

	"github.com/revisio/revisio-backend/config"
)

// SupabaseStore pousse les fichiers de cours vers Supabase Storage. La config
// est injectée à la construction plutôt que lue dans l'environnement.
type SupabaseStore struct {
	cfg config.StorageConfig
}

func NewSupabaseStore(cfg config.StorageConfig) *SupabaseStore {
	return &SupabaseStore{cfg: cfg}
}

func (s *SupabaseStore) client() *storage.Client {
	return storage.NewClient(s.cfg.URL+"/storage/v1", s.cfg.Key, nil)
}

// PublicURL reconstruit l'URL publique d'un objet du bucket. Le schéma
// <base>/storage/v1/object/public/<bucket>/<path> est figé : le changer
// casserait les URLs déjà insérées dans les cours enregistrés.
func (s *SupabaseStore) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.cfg.URL, s.cfg.Bucket, objectPath)
}

// Upload envoie les octets vers le bucket et renvoie l'URL publique.
func (s *SupabaseStore) Upload(objectPath string, data []byte, contentType string) (string, error) {
	options := storage.FileOptions{
		ContentType: &contentType,
	}
	if _, err := s.client().UploadFile(s.cfg.Bucket, objectPath, bytes.NewBuffer(data), options); err != nil {
		return "", err
	}
	return s.PublicURL(objectPath), nil
}

// Delete reçoit une URL publique (ou tout chemin contenant "/storage/v1/object/")
// et supprime l'objet correspondant via l'API Supabase Storage.
func (s *SupabaseStore) Delete(publicURL string) error {
	if publicURL == "" {
		return nil
	}
	if s.cfg.URL == "" || s.cfg.Key == "" {
		return fmt.Errorf("SUPABASE_URL ou SUPABASE_KEY non configuré")
	}

	idx := strings.Index(publicURL, "/storage/v1/object/")
	if idx == -1 {
		return fmt.Errorf("chemin d'objet introuvable dans l'URL: %s", publicURL)
	}

	rest := publicURL[idx+len("/storage/v1/object/"):]
	rest = strings.TrimPrefix(rest, "public/")

	// rest => "<bucket>/<path/to/object...>"
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 {
		return fmt.Errorf("bucket/objet illisible dans l'URL: %s", publicURL)
	}
	bucket := parts[0]
	object := parts[1]
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(s.cfg.URL, "/"), bucket, object)

	req, err := http.NewRequest(http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Key)
	req.Header.Set("apikey", s.cfg.Key)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("suppression Supabase échouée: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
